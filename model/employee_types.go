package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	EmployeeActive    = "ACTIVE"
	EmployeeInactive  = "INACTIVE"
	EmployeeSuspended = "SUSPENDED"
)

const (
	RoleWorker  = "WORKER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

// Employee は従業員レコードです。
type Employee struct {
	ID                 ID                  `json:"id"`
	OrgID              ID                  `json:"orgId"`
	OrgName            string              `json:"orgName,omitempty"`
	EmployeeID         string              `json:"employeeId"`
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	MustChangePassword bool                `json:"mustChangePassword"`
	Role               string              `json:"role"`
	Department         string              `json:"department"`
	Phone              string              `json:"phone"`
	Location           string              `json:"location"`
	Performance        []PerformanceReview `json:"performance"`
	Experience         int                 `json:"experience"`
	Salary             float64             `json:"salary"`
	Status             string              `json:"status"`
	Attendance         int                 `json:"attendance"`
	HireDate           string              `json:"hireDate"`
	Skills             []string            `json:"skills"`
}

// PerformanceReview は従業員評価です。
type PerformanceReview struct {
	ID         ID     `json:"id"`
	EmployeeID string `json:"employeeId,omitempty"`
	ReviewerID string `json:"reviewerId,omitempty"`
	Rating     Rating `json:"rating"`
	Comments   string `json:"comments"`
	ReviewDate string `json:"reviewDate"`
}

// ReviewInput is the create/update payload for performance reviews.
type ReviewInput struct {
	EmployeeID string `json:"employeeId,omitempty"`
	Rating     Rating `json:"rating,omitempty"`
	Comments   string `json:"comments,omitempty"`
}

// Valid reports whether r is a whole score from 1 to 5.
func (r Rating) Valid() bool {
	return r >= 1 && r <= 5 && r == Rating(int(r))
}

// Rating is a 1-5 review score. It decodes from a number or from a roman
// numeral string ("I".."V"); anything else is 0.
type Rating float64

var romanRatings = map[string]Rating{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5}

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = romanRatings[strings.ToUpper(strings.TrimSpace(s))]
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*r = 0
		return nil
	}
	*r = Rating(f)
	return nil
}

// EmployeeInput is the create/update payload. Zero fields are omitted so an
// update only touches what the caller sets.
type EmployeeInput struct {
	Name               string   `json:"name,omitempty"`
	Email              string   `json:"email,omitempty"`
	Department         string   `json:"department,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	Location           string   `json:"location,omitempty"`
	Experience         *int     `json:"experience,omitempty"`
	Salary             *float64 `json:"salary,omitempty"`
	Status             string   `json:"status,omitempty"`
	Role               string   `json:"role,omitempty"`
	MustChangePassword *bool    `json:"mustChangePassword,omitempty"`
	Skills             []string `json:"skills,omitempty"`
}
