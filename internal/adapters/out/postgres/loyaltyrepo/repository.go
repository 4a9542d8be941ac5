package loyaltyrepo

import (
	"context"
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const completedEvent = "completed"

// GormLoyaltyLedger implements LoyaltyLedger using GORM. Both mutations rely
// on running inside the caller's transaction; the ledger itself never opens
// one.
type GormLoyaltyLedger struct {
	db        *gorm.DB
	threshold int
}

// NewGormLoyaltyLedger creates a ledger. threshold is the number of points
// that converts into one free-delivery credit.
func NewGormLoyaltyLedger(db *gorm.DB, threshold int) *GormLoyaltyLedger {
	return &GormLoyaltyLedger{
		db:        db,
		threshold: threshold,
	}
}

// SpendFreeDelivery consumes one credit. The decrement is conditional on a
// positive balance, so two concurrent spends of a single credit cannot both
// succeed.
func (l *GormLoyaltyLedger) SpendFreeDelivery(ctx context.Context, tenantID, customerUserID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), customerUserID.Validate()); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).Exec(`
		UPDATE loyalty_accounts
		SET free_credits = free_credits - 1
		WHERE tenant_id = ? AND customer_user_id = ? AND free_credits > 0
	`, tenantID.Bytes(), customerUserID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("no free delivery credit to spend")
	}

	return nil
}

// CreditCompletion awards one point for the delivery's completion and
// converts accumulated points into a free credit at the threshold. The event
// insert is the idempotency gate: when the (delivery, event) pair already
// exists nothing else runs.
func (l *GormLoyaltyLedger) CreditCompletion(ctx context.Context, tenantID, customerUserID, deliveryID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), customerUserID.Validate(), deliveryID.Validate()); err != nil {
		return err
	}

	event := CreditEventDTO{
		DeliveryID:     deliveryID.Bytes(),
		Event:          completedEvent,
		TenantID:       tenantID.Bytes(),
		CustomerUserID: customerUserID.Bytes(),
	}
	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&event)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return nil
	}

	err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&AccountDTO{
			TenantID:       tenantID.Bytes(),
			CustomerUserID: customerUserID.Bytes(),
		}).Error
	if err != nil {
		return err
	}

	err = l.db.WithContext(ctx).Exec(`
		UPDATE loyalty_accounts
		SET points = points + 1
		WHERE tenant_id = ? AND customer_user_id = ?
	`, tenantID.Bytes(), customerUserID.Bytes()).Error
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Exec(`
		UPDATE loyalty_accounts
		SET points = points - ?, free_credits = free_credits + 1
		WHERE tenant_id = ? AND customer_user_id = ? AND points >= ?
	`, l.threshold, tenantID.Bytes(), customerUserID.Bytes(), l.threshold).Error
}

// Balance reports the customer's current points and free credits. A customer
// with no account yet has a zero balance.
func (l *GormLoyaltyLedger) Balance(ctx context.Context, tenantID, customerUserID kernel.UUID) (int, int, error) {
	if err := errors.Join(tenantID.Validate(), customerUserID.Validate()); err != nil {
		return 0, 0, err
	}

	var dto AccountDTO
	err := l.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND customer_user_id = ?",
			tenantID.Bytes(), customerUserID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	return dto.Points, dto.FreeCredits, nil
}
