package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInviteCode_Status(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	consumer := "e2"

	cases := []struct {
		name string
		code InviteCode
		want Status
		err  error
	}{
		{"fresh", InviteCode{IsActive: true, ExpiresAt: now.Add(time.Hour)}, StatusActive, nil},
		{"expiry instant counts as expired", InviteCode{IsActive: true, ExpiresAt: now}, StatusExpired, ErrInviteExpired},
		{"past expiry but still flagged active", InviteCode{IsActive: true, ExpiresAt: now.Add(-time.Second)}, StatusExpired, ErrInviteExpired},
		{"swept", InviteCode{IsActive: false, ExpiresAt: now.Add(-time.Hour)}, StatusExpired, ErrInviteExpired},
		{"consumed wins over expiry", InviteCode{ConsumedBy: &consumer, ExpiresAt: now.Add(-time.Hour)}, StatusConsumed, ErrInviteAlreadyUsed},
		{"deactivated before expiry", InviteCode{IsActive: false, ExpiresAt: now.Add(time.Hour)}, StatusInactive, ErrInviteInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.Status(now))
			err := tc.code.CheckConsumable(now)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}
