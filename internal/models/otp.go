package models

// PendingOtp — запись в redis под ключом otp:<email>.
// ExpiresAt — unix-секунды; запись считается невалидной после этого
// момента, даже если redis её ещё физически не удалил.
type PendingOtp struct {
	Code      string `json:"otp"`
	ExpiresAt int64  `json:"expires_at"`
}
