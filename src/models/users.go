package models

import "time"

type User struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Password    string    `db:"password"`
	RiskProfile string    `db:"risk_profile"`
	KYCStatus   string    `db:"kyc_status"`
	CreatedAt   time.Time `db:"created_at"`
}
