package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/pkg/dbmetrics"
	"github.com/feelmetown/FMT-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

// bookingColumns общий список колонок для SELECT-запросов
var bookingColumns = []string{
	"id",
	"ref",
	"venue_id",
	"booking_date",
	"slot_label",
	"slot_key",
	"start_time",
	"end_time",
	"customer_name",
	"customer_email",
	"customer_phone",
	"occasion",
	"party_size",
	"total_amount",
	"advance_amount",
	"status",
	"refund_eligible",
	"refund_amount",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Менеджер бронирований всегда вызывает Create внутри сериализуемой транзакции,
// после перечитывания активных бронирований с блокировкой — это и предотвращает
// двойное бронирование одного слота. Частичный уникальный индекс по
// (venue_id, booking_date, slot_key) WHERE status <> 'cancelled' служит
// последней линией обороны на уровне БД.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"ref",
			"venue_id",
			"booking_date",
			"slot_label",
			"slot_key",
			"start_time",
			"end_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"occasion",
			"party_size",
			"total_amount",
			"advance_amount",
			"status",
		).
		Values(
			booking.Ref,
			booking.VenueID,
			booking.BookingDate,
			booking.SlotLabel,
			booking.SlotKey,
			booking.StartTime,
			booking.EndTime,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Occasion,
			booking.PartySize,
			booking.TotalAmount,
			booking.AdvanceAmount,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по внутреннему ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByRef получает бронирование по внешнему референсу (из ссылки в письме)
func (r *Repository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"ref": ref}, "GetByRef")
}

// FindActiveByVenueAndDate получает все активные (не отменённые) бронирования
// площадки на дату. Внутри транзакции добавляет FOR UPDATE, чтобы конкурентная
// проверка доступности слота видела согласованный набор строк.
func (r *Repository) FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByVenueAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByVenueAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки на дату (day sheet)
// По умолчанию только активные; IncludeCancelled добавляет отменённые
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID}).
		Where(squirrel.Eq{"booking_date": filter.Date}).
		OrderBy("start_time ASC, created_at ASC")

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByCustomerEmail получает историю бронирований клиента
func (r *Repository) GetByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Expr("LOWER(customer_email) = LOWER(?)", email)).
		OrderBy("booking_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel переводит бронирование в статус cancelled и сохраняет аудит решения
// о возврате. Физического удаления нет: слот освобождается сменой статуса,
// а запись остаётся для истории и идемпотентной повторной отмены.
func (r *Repository) Cancel(ctx context.Context, id int64, decision domain.RefundDecision) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("refund_eligible", decision.Eligible).
		Set("refund_amount", decision.Amount).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// getOne выполняет выборку одного бронирования по условию
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Ref,
		&booking.VenueID,
		&booking.BookingDate,
		&booking.SlotLabel,
		&booking.SlotKey,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Occasion,
		&booking.PartySize,
		&booking.TotalAmount,
		&booking.AdvanceAmount,
		&booking.Status,
		&booking.RefundEligible,
		&booking.RefundAmount,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
