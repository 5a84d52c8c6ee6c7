package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewVerification_Defaults(t *testing.T) {
	v := NewVerification()

	require.Equal(t, StateUnverified, v.State())
	require.False(t, v.OTPSent())
	require.False(t, v.OTPVerified())
	require.False(t, v.CanSend(), "no email yet")
}

func TestVerification_SendSuccess(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com")
	require.True(t, v.CanSend())

	v = v.MarkSent(nil)

	require.Equal(t, StateSent, v.State())
	require.True(t, v.OTPSent())
	require.False(t, v.OTPVerified())
	require.False(t, v.CanSend())
}

func TestVerification_SendFailureKeepsState(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(errors.New("dial tcp: refused"))

	require.Equal(t, StateUnverified, v.State())
	require.True(t, v.CanSend())
}

func TestVerification_VerifySuccess(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(nil).SetOTP("123456")
	require.True(t, v.CanVerify())

	v = v.ApplyVerifyResult(VerifyResult{Verified: true, Message: "OTP verified"})

	require.Equal(t, StateVerified, v.State())
	require.True(t, v.OTPVerified())
	require.True(t, v.OTPSent())
	require.False(t, v.CanVerify())
}

func TestVerification_VerifyFailureForcesResend(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(nil).SetOTP("000000")

	v = v.ApplyVerifyResult(VerifyResult{Message: "Invalid OTP"})

	require.Equal(t, StateFailed, v.State())
	require.False(t, v.OTPSent())
	require.False(t, v.OTPVerified())
	require.True(t, v.CanSend(), "send must be re-enabled after a failed verification")
	require.False(t, v.CanVerify())
}

func TestVerification_CanVerifyNeedsOTP(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(nil)
	require.False(t, v.CanVerify())
}

func TestVerification_EmailChangeResetsVerified(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(nil).
		ApplyVerifyResult(VerifyResult{Verified: true})

	v = v.SetEmail("c@d.com")

	require.Equal(t, StateUnverified, v.State())
	require.Equal(t, "c@d.com", v.Email())
}

func TestVerification_SameEmailKeepsState(t *testing.T) {
	v := NewVerification().SetEmail("a@b.com").MarkSent(nil)

	v = v.SetEmail("a@b.com")

	require.Equal(t, StateSent, v.State())
}

func TestVerificationState_IsValid(t *testing.T) {
	for _, s := range []VerificationState{StateUnverified, StateSent, StateVerified, StateFailed} {
		require.True(t, s.IsValid(), s.String())
	}
	require.False(t, VerificationState("bogus").IsValid())
}

// TestVerification_StateMachine drives random event sequences and checks that
// the boolean view never reaches an inconsistent combination.
func TestVerification_StateMachine(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		v := NewVerification()
		steps := rapid.IntRange(1, 40).Draw(r, "steps")

		for i := 0; i < steps; i++ {
			prev := v
			switch rapid.IntRange(0, 4).Draw(r, "event") {
			case 0:
				v = v.SetEmail(rapid.SampledFrom([]string{"", "a@b.com", "c@d.com"}).Draw(r, "email"))
			case 1:
				v = v.SetOTP(rapid.StringMatching(`[0-9]{0,6}`).Draw(r, "otp"))
			case 2:
				if !v.CanSend() {
					continue
				}
				var err error
				if rapid.Bool().Draw(r, "sendFails") {
					err = errors.New("network")
				}
				v = v.MarkSent(err)
				if err == nil {
					require.Equal(r, StateSent, v.State())
				} else {
					require.Equal(r, prev.State(), v.State())
				}
			case 3:
				if !v.CanVerify() {
					continue
				}
				verified := rapid.Bool().Draw(r, "verified")
				v = v.ApplyVerifyResult(VerifyResult{Verified: verified})
				if verified {
					require.Equal(r, StateVerified, v.State())
				} else {
					require.Equal(r, StateFailed, v.State())
				}
			case 4:
				v = v.SetEmail(prev.Email())
				require.Equal(r, prev, v)
			}

			require.True(r, v.State().IsValid())
			if v.OTPVerified() {
				require.True(r, v.OTPSent(), "verified implies sent")
			}
			if v.OTPSent() {
				require.NotEmpty(r, v.Email(), "sent implies an email")
			}
		}
	})
}
