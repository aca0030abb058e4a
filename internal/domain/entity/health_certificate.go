package entity

import (
	"fmt"
	"time"
)

// CertificateStatus represents the status of a health certificate request
type CertificateStatus string

const (
	CertificateStatusPending  CertificateStatus = "pending"
	CertificateStatusApproved CertificateStatus = "approved"
	CertificateStatusRejected CertificateStatus = "rejected"
)

var CertificateStatuses = []CertificateStatus{
	CertificateStatusPending,
	CertificateStatusApproved,
	CertificateStatusRejected,
}

var certificateTransitions = map[CertificateStatus][]CertificateStatus{
	CertificateStatusPending: {
		CertificateStatusApproved,
		CertificateStatusRejected,
	},
}

func ParseCertificateStatus(s string) (CertificateStatus, error) {
	status := CertificateStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown certificate status %q", s)
	}
	return status, nil
}

func (s CertificateStatus) Valid() bool {
	for _, known := range CertificateStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s CertificateStatus) IsTerminal() bool {
	return len(certificateTransitions[s]) == 0
}

func (s CertificateStatus) CanTransitionTo(next CertificateStatus) bool {
	for _, allowed := range certificateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HealthCertificate represents a user's request for a health certificate
type HealthCertificate struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64             `gorm:"not null;index" json:"user_id"`
	Reason      string            `gorm:"type:varchar(100);not null" json:"reason"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Status      CertificateStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (HealthCertificate) TableName() string {
	return "health_certificates"
}
