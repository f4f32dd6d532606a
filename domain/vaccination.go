package domain

import (
	"context"
	"time"
)

type Vaccination struct {
	VaccinationID   int       `gorm:"primaryKey;autoIncrement" json:"vaccination_id"`
	ChildID         int       `gorm:"not null;uniqueIndex:uidx_vaccination_child_vaccine" json:"child_id"`
	Child           Child     `gorm:"foreignKey:ChildID;references:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VaccineID       string    `gorm:"type:varchar(100);not null;uniqueIndex:uidx_vaccination_child_vaccine" json:"vaccine_id"`
	VaccineName     string    `gorm:"type:varchar(150);not null" json:"vaccine_name"`
	Dose            string    `gorm:"type:varchar(50)" json:"dose"`
	ScheduledDate   string    `gorm:"type:varchar(10);not null;index" json:"scheduled_date"`
	AgeMonths       *int      `json:"age_months"`
	AgeDays         *int      `json:"age_days"`
	IsCompleted     bool      `gorm:"default:false" json:"is_completed"`
	CompletedDate   *string   `gorm:"type:varchar(10)" json:"completed_date"`
	CompletionNotes *string   `gorm:"type:text" json:"completion_notes"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type VaccinationPayload struct {
	VaccineID     *string `json:"vaccine_id" valid:"optional"`
	VaccineName   *string `json:"vaccine_name" valid:"optional"`
	Dose          *string `json:"dose" valid:"optional"`
	ScheduledDate *string `json:"scheduled_date" valid:"optional"`
	AgeMonths     *int    `json:"age_months" valid:"optional"`
	AgeDays       *int    `json:"age_days" valid:"optional"`
	Notes         *string `json:"notes" valid:"optional"`
}

type CompletionPayload struct {
	CompletedDate   *string `json:"completed_date" valid:"optional"`
	CompletionNotes *string `json:"completion_notes" valid:"optional"`
}

type VaccinationProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// VaccinationMonth buckets a child's schedule by the YYYY-MM of the
// scheduled date.
type VaccinationMonth struct {
	Month        string        `json:"month"`
	Total        int           `json:"total"`
	Completed    int           `json:"completed"`
	Vaccinations []Vaccination `json:"vaccinations"`
}

func (m *VaccinationMonth) Add(v Vaccination) {
	m.Total++
	if v.IsCompleted {
		m.Completed++
	}
	m.Vaccinations = append(m.Vaccinations, v)
}

type VaccinationCard struct {
	ChildName string              `json:"child_name"`
	Progress  VaccinationProgress `json:"progress"`
	NextDue   *Vaccination        `json:"next_due"`
}

type VaccinationRepo interface {
	CreateVaccination(ctx context.Context, v *Vaccination) error
	FindVaccination(ctx context.Context, id int) (*Vaccination, error)
	// FindByVaccineID returns nil when the child has no such vaccine.
	FindByVaccineID(ctx context.Context, childID int, vaccineID string) (*Vaccination, error)
	// ListVaccinations orders by scheduled date ascending.
	ListVaccinations(ctx context.Context, childID int) ([]Vaccination, error)
	// ListIncomplete returns incomplete vaccinations scheduled within the
	// closed range [from, to]; an empty from is unbounded.
	ListIncomplete(ctx context.Context, childID int, from, to string) ([]Vaccination, error)
	CountVaccinations(ctx context.Context, childID int) (total int64, completed int64, err error)
	UpdateVaccination(ctx context.Context, v *Vaccination) error
	DeleteVaccination(ctx context.Context, id int) error
}

type VaccinationUseCase interface {
	Create(ctx context.Context, userID, childID int, req *VaccinationPayload) (*Vaccination, error)
	ListByChild(ctx context.Context, userID, childID int) ([]Vaccination, error)
	Get(ctx context.Context, userID, id int) (*Vaccination, error)
	Update(ctx context.Context, userID, id int, req *VaccinationPayload) (*Vaccination, error)
	Complete(ctx context.Context, userID, id int, req *CompletionPayload) (*Vaccination, error)
	Uncomplete(ctx context.Context, userID, id int) (*Vaccination, error)
	Delete(ctx context.Context, userID, id int) error
	Due(ctx context.Context, userID, childID int) ([]Vaccination, error)
	Overdue(ctx context.Context, userID, childID int) ([]Vaccination, error)
	Progress(ctx context.Context, userID, childID int) (*VaccinationProgress, error)
	Schedule(ctx context.Context, userID, childID int) ([]VaccinationMonth, error)
	Card(ctx context.Context, userID, childID int) (*VaccinationCard, error)
}
