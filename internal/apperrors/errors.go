package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrObjectiveNotFound indicates that an objective with the given ID does not exist.
	ErrObjectiveNotFound = errors.New("objective not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRecurringNotFound indicates that a recurring transaction with the given ID does not exist.
	ErrRecurringNotFound = errors.New("recurring transaction not found")

	// ErrCategoryNotFound indicates that a category with the given ID does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Invalid input errors represent calculator inputs rejected before any
// computation takes place. Inputs are never silently clamped.
var (
	// ErrInvalidTarget indicates a non-positive objective target amount.
	ErrInvalidTarget = errors.New("target amount must be positive")

	// ErrInvalidQuantity indicates a non-positive investment quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNegativeAmount indicates an amount field with an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidFrequency indicates an unknown recurrence frequency.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvalidAnchorDay indicates an anchor day outside the 1-31 range.
	ErrInvalidAnchorDay = errors.New("anchor day must be between 1 and 31")

	// ErrInvalidObjectiveKind indicates an unknown objective kind.
	ErrInvalidObjectiveKind = errors.New("invalid objective kind")

	// ErrInvalidPeriod indicates a period token not in YYYY-MM format.
	ErrInvalidPeriod = errors.New("invalid period format")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Collaborator errors are surfaced from the ports this service consumes.
var (
	// ErrSourceUnavailable indicates the value-source failed to supply the
	// current amount for an objective period. Evaluation aborts for that
	// objective only; other objectives in a batch are unaffected.
	ErrSourceUnavailable = errors.New("value source unavailable")

	// ErrNotificationDeliveryFailed indicates the notification port failed to
	// deliver an alert. The caller owns the retry policy; the failure is
	// reported, never swallowed.
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)

// Terminal results are not failures but outcomes the caller must handle.
var (
	// ErrSeriesExhausted indicates a recurring transaction has no further
	// occurrences before its end date. The caller deactivates the series.
	ErrSeriesExhausted = errors.New("recurrence series exhausted")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrCategoryInUse indicates that a category cannot be deleted because
	// transactions or objectives still reference it.
	ErrCategoryInUse = errors.New("category is in use")

	// ErrDefaultCategory indicates an attempt to delete a seeded default category.
	ErrDefaultCategory = errors.New("default categories cannot be deleted")

	// ErrInvalidToken indicates an auth token that failed fernet verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)
