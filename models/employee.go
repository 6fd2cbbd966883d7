package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContractActive     = "active"
	ContractTerminated = "terminated"
)

type Employee struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffNumber          string             `bson:"staffNumber" json:"staffNumber"`
	FullName             string             `bson:"fullName" json:"fullName"`
	IdentityNumber       string             `bson:"identityNumber" json:"identityNumber"`
	Qualifications       string             `bson:"qualifications" json:"qualifications"`
	Position             string             `bson:"position" json:"position"`
	Salary               float64            `bson:"salary" json:"salary"`
	ContractStatus       string             `bson:"contractStatus" json:"contractStatus"`
	Points               int                `bson:"points" json:"points"`
	PointsHistory        []PointsEntry      `bson:"pointsHistory" json:"pointsHistory"`
	AcademicTraining     []string           `bson:"academicTraining" json:"academicTraining"`
	ProfessionalTraining []string           `bson:"professionalTraining" json:"professionalTraining"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PointsEntry is one record in an employee's append-only points log.
type PointsEntry struct {
	Points int       `bson:"points" json:"points"`
	Reason string    `bson:"reason" json:"reason"`
	Date   time.Time `bson:"date" json:"date"`
}

// EmployeeUpdate carries a partial update. Nil fields are left untouched.
// Points and the history log are deliberately absent: they change only
// through the award operation.
type EmployeeUpdate struct {
	StaffNumber          *string   `json:"staffNumber"`
	FullName             *string   `json:"fullName"`
	IdentityNumber       *string   `json:"identityNumber"`
	Qualifications       *string   `json:"qualifications"`
	Position             *string   `json:"position"`
	Salary               *float64  `json:"salary"`
	ContractStatus       *string   `json:"contractStatus"`
	AcademicTraining     *[]string `json:"academicTraining"`
	ProfessionalTraining *[]string `json:"professionalTraining"`
}

// Validate checks a full create payload and fills in defaults.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.StaffNumber) == "" {
		return fmt.Errorf("staffNumber is required")
	}
	if strings.TrimSpace(e.FullName) == "" {
		return fmt.Errorf("fullName is required")
	}
	if strings.TrimSpace(e.IdentityNumber) == "" {
		return fmt.Errorf("identityNumber is required")
	}
	if strings.TrimSpace(e.Position) == "" {
		return fmt.Errorf("position is required")
	}
	if e.Salary < 0 {
		return fmt.Errorf("salary must not be negative")
	}
	if e.ContractStatus == "" {
		e.ContractStatus = ContractActive
	}
	if e.ContractStatus != ContractActive && e.ContractStatus != ContractTerminated {
		return fmt.Errorf("contractStatus must be %q or %q", ContractActive, ContractTerminated)
	}
	// new records always start with a clean points ledger
	e.Points = 0
	e.PointsHistory = []PointsEntry{}
	if e.AcademicTraining == nil {
		e.AcademicTraining = []string{}
	}
	if e.ProfessionalTraining == nil {
		e.ProfessionalTraining = []string{}
	}
	return nil
}

// Validate rejects partial updates that would leave a record in an invalid state.
func (u *EmployeeUpdate) Validate() error {
	if u.StaffNumber != nil && strings.TrimSpace(*u.StaffNumber) == "" {
		return fmt.Errorf("staffNumber cannot be empty")
	}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) == "" {
		return fmt.Errorf("fullName cannot be empty")
	}
	if u.Salary != nil && *u.Salary < 0 {
		return fmt.Errorf("salary must not be negative")
	}
	if u.ContractStatus != nil && *u.ContractStatus != ContractActive && *u.ContractStatus != ContractTerminated {
		return fmt.Errorf("contractStatus must be %q or %q", ContractActive, ContractTerminated)
	}
	return nil
}
