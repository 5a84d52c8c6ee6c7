package registration

// VerificationState represents where an email address is in the OTP exchange.
type VerificationState string

const (
	// StateUnverified indicates no OTP has been requested for the current email.
	StateUnverified VerificationState = "unverified"

	// StateSent indicates an OTP was issued and is awaiting verification.
	StateSent VerificationState = "sent"

	// StateVerified indicates the backend accepted the OTP.
	StateVerified VerificationState = "verified"

	// StateFailed indicates the last verification attempt was rejected.
	// A new OTP must be requested before retrying.
	StateFailed VerificationState = "failed"
)

// String returns the string representation of the state.
func (s VerificationState) String() string {
	return string(s)
}

// IsValid returns true if the state is a recognized verification state.
func (s VerificationState) IsValid() bool {
	switch s {
	case StateUnverified, StateSent, StateVerified, StateFailed:
		return true
	default:
		return false
	}
}

// VerifyResult is the outcome of an OTP verification request.
type VerifyResult struct {
	Verified bool
	Message  string
}

// Verification holds the email being verified, the OTP typed by the user,
// and the exchange state.
type Verification struct {
	email string
	otp   string
	state VerificationState
}

// NewVerification returns an unverified, empty verification.
func NewVerification() Verification {
	return Verification{state: StateUnverified}
}

// Email returns the email address under verification.
func (v Verification) Email() string { return v.email }

// OTP returns the passcode entered by the user.
func (v Verification) OTP() string { return v.otp }

// State returns the current verification state.
func (v Verification) State() VerificationState { return v.state }

// OTPSent reports whether an OTP is outstanding or was already accepted.
func (v Verification) OTPSent() bool {
	return v.state == StateSent || v.state == StateVerified
}

// OTPVerified reports whether the email has been verified.
func (v Verification) OTPVerified() bool {
	return v.state == StateVerified
}

// SetEmail changes the email address. Any outstanding or completed
// verification belongs to the previous address and is discarded.
func (v Verification) SetEmail(email string) Verification {
	if email == v.email {
		return v
	}
	v.email = email
	if v.state == StateSent || v.state == StateVerified {
		v.state = StateUnverified
	}
	return v
}

// SetOTP records the passcode typed by the user.
func (v Verification) SetOTP(otp string) Verification {
	v.otp = otp
	return v
}

// CanSend reports whether an OTP may be requested now.
func (v Verification) CanSend() bool {
	if v.email == "" {
		return false
	}
	return v.state == StateUnverified || v.state == StateFailed
}

// CanVerify reports whether the entered OTP may be submitted for verification.
func (v Verification) CanVerify() bool {
	return v.state == StateSent && v.otp != ""
}

// MarkSent applies the outcome of a send request. A failed request leaves
// the state untouched so the user can retry.
func (v Verification) MarkSent(err error) Verification {
	if err != nil {
		return v
	}
	v.state = StateSent
	return v
}

// ApplyVerifyResult applies the outcome of a verification request.
// Anything other than a verified result moves to StateFailed.
func (v Verification) ApplyVerifyResult(result VerifyResult) Verification {
	if result.Verified {
		v.state = StateVerified
		return v
	}
	v.state = StateFailed
	return v
}
