// internal/app/notifier_service.go
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"scan_review_notifier/internal/domain/account"
	"scan_review_notifier/internal/domain/notification"
	"scan_review_notifier/internal/domain/push"
	"scan_review_notifier/internal/domain/scan"
	idb "scan_review_notifier/internal/infra/database" // For repository sentinel errors
	"scan_review_notifier/internal/infra/metrics"
)

// NotifierService reacts to scan request change events delivered by the
// document store's eventing. Delivery is at-least-once and unordered, and
// two activations for the same record may run concurrently, so every
// milestone is admitted through a conditional dedup-flag write against the
// currently persisted record state immediately before the send.
type NotifierService interface {
	// HandleScanRequestCreated processes a creation event carrying the new
	// record state.
	HandleScanRequestCreated(ctx context.Context, after *scan.Request) error
	// HandleScanRequestUpdated processes an update event carrying both the
	// prior and the new record state.
	HandleScanRequestUpdated(ctx context.Context, before, after *scan.Request) error
}

// NotifierServiceImpl implements the NotifierService interface.
type NotifierServiceImpl struct {
	scanRepo    scan.Repository
	accountRepo account.Repository
	pushClient  push.Client
	counters    *metrics.Counters
	logger      *logrus.Logger
}

func NewNotifierServiceImpl(
	sr scan.Repository,
	ar account.Repository,
	pc push.Client,
	counters *metrics.Counters,
	logger *logrus.Logger,
) *NotifierServiceImpl {
	return &NotifierServiceImpl{
		scanRepo:    sr,
		accountRepo: ar,
		pushClient:  pc,
		counters:    counters,
		logger:      logger,
	}
}

func (s *NotifierServiceImpl) HandleScanRequestCreated(ctx context.Context, after *scan.Request) error {
	return s.process(ctx, notification.ResolveCreated(after))
}

func (s *NotifierServiceImpl) HandleScanRequestUpdated(ctx context.Context, before, after *scan.Request) error {
	return s.process(ctx, notification.ResolveUpdated(before, after))
}

// process runs one admitted intent through recipient resolution, dispatch
// and outcome accounting. A nil intent means the event carried no milestone;
// that is the common case and not an error.
func (s *NotifierServiceImpl) process(ctx context.Context, intent *notification.Intent) error {
	if intent == nil {
		return nil
	}
	s.counters.IntentsResolved.Add(1)

	log := s.logger.WithFields(logrus.Fields{
		"requestId": intent.RequestID,
		"milestone": intent.Kind,
	})

	// Admission: one atomic test-and-set on the dedup flag, executed right
	// before the send. Duplicate deliveries and racing creation/update
	// activations both lose this write and perform no send.
	admitted, err := s.admit(ctx, intent)
	if err != nil {
		s.counters.FlagWriteFailures.Add(1)
		log.WithError(err).Warn("Dedup flag write failed; milestone not admitted.")
		return fmt.Errorf("failed to admit %s for request %s: %w", intent.Kind, intent.RequestID, err)
	}
	if !admitted {
		s.counters.DuplicatesSuppressed.Add(1)
		log.Info("Milestone already handled for this request. Suppressing duplicate notification.")
		return nil
	}
	s.counters.Admitted.Add(1)

	tokens, err := s.resolveRecipients(ctx, intent)
	if err != nil {
		// The flag is already set, so a retry of this activation will be
		// suppressed; the milestone is lost. Accepted over double-sending.
		s.counters.DispatchFailure.Add(1)
		log.WithError(err).Error("Recipient resolution failed after admission; notification lost.")
		return fmt.Errorf("failed to resolve recipients for %s on request %s: %w", intent.Kind, intent.RequestID, err)
	}

	if len(tokens) == 0 {
		log.Info("No eligible recipients; dispatch is a no-op.")
		return nil
	}

	result, err := s.pushClient.SendMulticast(ctx, tokens, push.Message{
		Title: intent.Payload.Title,
		Body:  intent.Payload.Body,
		Data:  intent.Payload.Data,
	})
	if err != nil {
		s.counters.DispatchFailure.Add(1)
		log.WithError(err).Error("Multicast send failed outright.")
		return fmt.Errorf("failed to dispatch %s for request %s: %w", intent.Kind, intent.RequestID, err)
	}

	s.counters.DispatchSuccess.Add(1)
	log.WithFields(logrus.Fields{
		"recipients": len(tokens),
		"succeeded":  result.SuccessCount,
		"failed":     result.FailureCount,
	}).Info("Notification dispatched.")

	s.clearStaleTokens(ctx, log, result.StaleTokens)
	return nil
}

func (s *NotifierServiceImpl) admit(ctx context.Context, intent *notification.Intent) (bool, error) {
	switch intent.Kind {
	case notification.KindUserReviewCompleted:
		return s.scanRepo.MarkUserNotifiedCompleted(ctx, intent.RequestID)
	default:
		return s.scanRepo.MarkExpertsNotified(ctx, intent.RequestID)
	}
}

// resolveRecipients turns the intent's recipient class into concrete device
// tokens. Accounts without a token or with notifications explicitly disabled
// are skipped; an empty result is a legitimate no-op, never an error.
func (s *NotifierServiceImpl) resolveRecipients(ctx context.Context, intent *notification.Intent) ([]string, error) {
	switch intent.Recipients() {
	case notification.RecipientUser:
		acc, err := s.accountRepo.GetByID(ctx, intent.UserID)
		if err != nil {
			if err == idb.ErrAccountNotFound {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to look up account %s: %w", intent.UserID, err)
		}
		if acc.FCMToken == "" || !acc.NotificationsEnabled() {
			return nil, nil
		}
		return []string{acc.FCMToken}, nil

	default: // RecipientExperts
		experts, err := s.accountRepo.ListByRole(ctx, account.RoleExpert)
		if err != nil {
			return nil, fmt.Errorf("failed to list expert accounts: %w", err)
		}
		tokens := make([]string, 0, len(experts))
		for _, e := range experts {
			if e.FCMToken == "" || !e.NotificationsEnabled() {
				continue
			}
			tokens = append(tokens, e.FCMToken)
		}
		return tokens, nil
	}
}

// clearStaleTokens purges tokens the transport reported as unregistered.
// Best-effort: a failed cleanup only means the token fails again next time.
func (s *NotifierServiceImpl) clearStaleTokens(ctx context.Context, log *logrus.Entry, tokens []string) {
	for _, token := range tokens {
		if err := s.accountRepo.ClearFCMTokenByValue(ctx, token); err != nil {
			log.WithError(err).Warn("Failed to clear stale device token.")
			continue
		}
		s.counters.StaleTokensCleared.Add(1)
	}
	if len(tokens) > 0 {
		log.Infof("Cleared %d stale device token(s).", len(tokens))
	}
}
