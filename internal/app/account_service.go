package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"scan_review_notifier/internal/domain/account"
)

// Custom application-level errors for the account service.
var ErrTokenRequired = fmt.Errorf("fcm token must not be empty")

// AccountService handles the device-token lifecycle and the per-account
// notification preference. Both operations are merge-style partial writes
// that never touch unrelated account fields.
type AccountService struct {
	accountRepo account.Repository
	logger      *logrus.Logger
}

func NewAccountService(ar account.Repository, logger *logrus.Logger) *AccountService {
	return &AccountService{
		accountRepo: ar,
		logger:      logger,
	}
}

// RegisterDevice stores the account's current push delivery address,
// replacing any previous one.
func (s *AccountService) RegisterDevice(ctx context.Context, accountID, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	if err := s.accountRepo.SetFCMToken(ctx, accountID, token); err != nil {
		return fmt.Errorf("failed to register device for account %s: %w", accountID, err)
	}
	s.logger.WithField("accountId", accountID).Info("Device token registered.")
	return nil
}

// SetNotificationPreference records whether the account wants to receive
// notifications. Only an explicit false ever suppresses delivery.
func (s *AccountService) SetNotificationPreference(ctx context.Context, accountID string, enabled bool) error {
	if err := s.accountRepo.SetNotificationsEnabled(ctx, accountID, enabled); err != nil {
		return fmt.Errorf("failed to set notification preference for account %s: %w", accountID, err)
	}
	s.logger.WithFields(logrus.Fields{"accountId": accountID, "enabled": enabled}).Info("Notification preference updated.")
	return nil
}
