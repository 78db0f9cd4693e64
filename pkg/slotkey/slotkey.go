// Package slotkey канонизирует текстовые метки временных слотов.
//
// Метки слотов приходят из разных источников (конфигурация площадки,
// старые записи бронирований, ручные правки) и дрейфуют по формату:
// "9:00 AM - 11:00 AM", "09:00AM-11:00AM", "09:00 - 11:00". Без единого
// ключа инвариант "не более одного активного бронирования на слот"
// незаметно ломается, поэтому все сравнения слотов в сервисе идут только
// по нормализованному ключу.
package slotkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feelmetown/FMT-BookingService/pkg/types"
)

// разделители диапазона: дефис и типографские тире
var rangeSeparators = []string{"–", "—", "-"}

// Normalize приводит метку слота к каноническому ключу "HH:MM-HH:MM" (24h).
// Функция тотальна: для нераспознанной метки возвращается копия с
// нормализованными пробелами и регистром, чтобы равенство на одинаковых
// "неизвестных" строках продолжало работать. Идемпотентна:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(label string) string {
	startPart, endPart, ok := splitRange(label)
	if ok {
		start, okStart := parseTimeOfDay(startPart)
		end, okEnd := parseTimeOfDay(endPart)
		if okStart && okEnd {
			return fmt.Sprintf("%s-%s", start, end)
		}
	}

	// fallback: нераспознанная метка, сравнимая сама с собой
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// Bounds извлекает границы слота из канонического ключа.
// ok == false для fallback-ключей, у которых границы не определены.
func Bounds(key string) (start, end types.TimeString, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	s, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return "", "", false
	}
	e, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return "", "", false
	}

	return s, e, true
}

// splitRange делит метку на части начала и конца по первому разделителю диапазона
func splitRange(label string) (string, string, bool) {
	for _, sep := range rangeSeparators {
		if idx := strings.Index(label, sep); idx > 0 {
			return label[:idx], label[idx+len(sep):], true
		}
	}
	return "", "", false
}

// parseTimeOfDay разбирает одну сторону диапазона: "9:00 AM", "09:00AM", "21:00", "7 pm"
func parseTimeOfDay(raw string) (types.TimeString, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	// отделяем маркер AM/PM, пробел между временем и маркером необязателен
	meridiem := ""
	for _, m := range []string{"A.M.", "P.M.", "AM", "PM"} {
		if strings.HasSuffix(s, m) {
			meridiem = string(m[0]) // "A" или "P"
			s = strings.TrimSpace(strings.TrimSuffix(s, m))
			break
		}
	}

	hourStr, minuteStr, found := strings.Cut(s, ":")
	if !found {
		minuteStr = "00"
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minuteStr))
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}

	switch meridiem {
	case "A":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	case "P":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return "", false
		}
	}

	return types.TimeString(fmt.Sprintf("%02d:%02d", hour, minute)), true
}
