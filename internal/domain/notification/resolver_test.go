package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scan_review_notifier/internal/domain/scan"
)

func TestResolveCreated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		after    *scan.Request
		wantKind Kind
		wantNil  bool
	}{
		{
			name:     "pending request produces expert intent",
			after:    &scan.Request{ID: "r1", Status: scan.StatusPending, UserName: "Asha"},
			wantKind: KindExpertReviewRequested,
		},
		{
			name:     "pending_review request produces expert intent",
			after:    &scan.Request{ID: "r1", Status: scan.StatusPendingReview},
			wantKind: KindExpertReviewRequested,
		},
		{
			name:     "missing status defaults to pending",
			after:    &scan.Request{ID: "r1"},
			wantKind: KindExpertReviewRequested,
		},
		{
			name:    "completed creation produces nothing",
			after:   &scan.Request{ID: "r1", Status: scan.StatusCompleted},
			wantNil: true,
		},
		{
			name:    "arbitrary status produces nothing",
			after:   &scan.Request{ID: "r1", Status: "archived"},
			wantNil: true,
		},
		{
			name:    "experts already notified produces nothing",
			after:   &scan.Request{ID: "r1", Status: scan.StatusPending, ExpertsNotified: true},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			intent := ResolveCreated(tt.after)
			if tt.wantNil {
				assert.Nil(t, intent)
				return
			}
			require.NotNil(t, intent)
			assert.Equal(t, tt.wantKind, intent.Kind)
			assert.Equal(t, "r1", intent.RequestID)
			assert.Equal(t, RecipientExperts, intent.Recipients())
		})
	}
}

func TestResolveCreated_PayloadContent(t *testing.T) {
	t.Parallel()

	intent := ResolveCreated(&scan.Request{ID: "req-7", Status: scan.StatusPending, UserName: "Asha"})
	require.NotNil(t, intent)

	assert.Equal(t, "New review request", intent.Payload.Title)
	assert.Equal(t, "Asha submitted a leaf scan for expert review.", intent.Payload.Body)
	assert.Equal(t, map[string]string{
		DataKeyType:      TypeScanRequestCreated,
		DataKeyRequestID: "req-7",
		DataKeyUserName:  "Asha",
	}, intent.Payload.Data)
}

func TestResolveCreated_MissingUserNameUsesPlaceholder(t *testing.T) {
	t.Parallel()

	intent := ResolveCreated(&scan.Request{ID: "r1", Status: scan.StatusPending})
	require.NotNil(t, intent)
	assert.Equal(t, "A farmer submitted a leaf scan for expert review.", intent.Payload.Body)
	assert.Equal(t, "A farmer", intent.Payload.Data[DataKeyUserName])
}

func TestResolveUpdated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		before   *scan.Request
		after    *scan.Request
		wantKind Kind
		wantNil  bool
	}{
		{
			name:     "transition into pending from outside fires expert intent",
			before:   &scan.Request{ID: "r1", Status: "draft"},
			after:    &scan.Request{ID: "r1", Status: scan.StatusPending},
			wantKind: KindExpertReviewRequested,
		},
		{
			name:    "pending to pending_review shuffle does not re-fire",
			before:  &scan.Request{ID: "r1", Status: scan.StatusPending},
			after:   &scan.Request{ID: "r1", Status: scan.StatusPendingReview},
			wantNil: true,
		},
		{
			name:    "no-change update never fires, even on a milestone status",
			before:  &scan.Request{ID: "r1", Status: scan.StatusReviewed, UserID: "u1"},
			after:   &scan.Request{ID: "r1", Status: scan.StatusReviewed, UserID: "u1"},
			wantNil: true,
		},
		{
			name:     "transition into reviewed fires completion intent",
			before:   &scan.Request{ID: "r1", Status: scan.StatusPendingReview, UserID: "u1"},
			after:    &scan.Request{ID: "r1", Status: scan.StatusReviewed, UserID: "u1"},
			wantKind: KindUserReviewCompleted,
		},
		{
			name:     "transition into completed fires completion intent",
			before:   &scan.Request{ID: "r1", Status: scan.StatusPendingReview, UserID: "u1"},
			after:    &scan.Request{ID: "r1", Status: scan.StatusCompleted, UserID: "u1"},
			wantKind: KindUserReviewCompleted,
		},
		{
			name:    "completion without any user id produces nothing",
			before:  &scan.Request{ID: "r1", Status: scan.StatusPendingReview},
			after:   &scan.Request{ID: "r1", Status: scan.StatusReviewed},
			wantNil: true,
		},
		{
			name:    "user already notified produces nothing",
			before:  &scan.Request{ID: "r1", Status: scan.StatusPendingReview, UserID: "u1"},
			after:   &scan.Request{ID: "r1", Status: scan.StatusReviewed, UserID: "u1", UserNotifiedCompleted: true},
			wantNil: true,
		},
		{
			name:    "experts already notified blocks a late pending transition",
			before:  &scan.Request{ID: "r1", Status: "draft"},
			after:   &scan.Request{ID: "r1", Status: scan.StatusPending, ExpertsNotified: true},
			wantNil: true,
		},
		{
			name:    "transition into an arbitrary status produces nothing",
			before:  &scan.Request{ID: "r1", Status: scan.StatusPending},
			after:   &scan.Request{ID: "r1", Status: "archived"},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			intent := ResolveUpdated(tt.before, tt.after)
			if tt.wantNil {
				assert.Nil(t, intent)
				return
			}
			require.NotNil(t, intent)
			assert.Equal(t, tt.wantKind, intent.Kind)
		})
	}
}

func TestResolveUpdated_CompletionPayloadAndFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("expert name and user id from the post-update state", func(t *testing.T) {
		t.Parallel()
		intent := ResolveUpdated(
			&scan.Request{ID: "r9", Status: scan.StatusPending, UserID: "u1"},
			&scan.Request{ID: "r9", Status: scan.StatusReviewed, UserID: "u1", ExpertName: "Dr. Lee"},
		)
		require.NotNil(t, intent)
		assert.Equal(t, "u1", intent.UserID)
		assert.Equal(t, RecipientUser, intent.Recipients())
		assert.Equal(t, "Your review is ready", intent.Payload.Title)
		assert.Equal(t, "Dr. Lee has completed the analysis of your leaf scan.", intent.Payload.Body)
		assert.Equal(t, map[string]string{
			DataKeyType:       TypeScanRequestCompleted,
			DataKeyRequestID:  "r9",
			DataKeyExpertName: "Dr. Lee",
		}, intent.Payload.Data)
	})

	t.Run("user id falls back to the pre-update state", func(t *testing.T) {
		t.Parallel()
		intent := ResolveUpdated(
			&scan.Request{ID: "r9", Status: scan.StatusPending, UserID: "u2"},
			&scan.Request{ID: "r9", Status: scan.StatusCompleted},
		)
		require.NotNil(t, intent)
		assert.Equal(t, "u2", intent.UserID)
	})

	t.Run("missing expert name uses placeholder", func(t *testing.T) {
		t.Parallel()
		intent := ResolveUpdated(
			&scan.Request{ID: "r9", Status: scan.StatusPending, UserID: "u1"},
			&scan.Request{ID: "r9", Status: scan.StatusReviewed, UserID: "u1"},
		)
		require.NotNil(t, intent)
		assert.Equal(t, "An expert has completed the analysis of your leaf scan.", intent.Payload.Body)
		assert.Equal(t, "An expert", intent.Payload.Data[DataKeyExpertName])
	})

	t.Run("user name falls back to the pre-update state on a pending transition", func(t *testing.T) {
		t.Parallel()
		intent := ResolveUpdated(
			&scan.Request{ID: "r9", Status: "draft", UserName: "Asha"},
			&scan.Request{ID: "r9", Status: scan.StatusPending},
		)
		require.NotNil(t, intent)
		assert.Equal(t, "Asha", intent.Payload.Data[DataKeyUserName])
	})
}
