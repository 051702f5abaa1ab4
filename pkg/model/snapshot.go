package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialSnapshot 主体财务快照，与Entity一对一
// 上游摄取流程负责写入，所有字段都可能缺失
type FinancialSnapshot struct {
	ID                 string   `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey          string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"entity_key"`
	Cash               *float64 `gorm:"type:decimal(18,2)" json:"cash"`
	MonthlyBurn        *float64 `gorm:"type:decimal(18,2)" json:"monthly_burn"`         // 月度消耗，负值代表盈利
	Debt               *float64 `gorm:"type:decimal(18,2)" json:"debt"`
	Assets             *float64 `gorm:"type:decimal(18,2)" json:"assets"`
	OperatingExpense   *float64 `gorm:"type:decimal(18,2)" json:"operating_expense"`
	OverheadExpense    *float64 `gorm:"type:decimal(18,2)" json:"overhead_expense"`
	RevenueTTM         *float64 `gorm:"type:decimal(18,2)" json:"revenue_ttm"`
	ExplorationExpense *float64 `gorm:"type:decimal(18,2)" json:"exploration_expense"`
	RnDExpense         *float64 `gorm:"type:decimal(18,2)" json:"rnd_expense"`
	SharesCurrent      *float64 `gorm:"type:decimal(18,0)" json:"shares_current"`
	SharesPriorYear    *float64 `gorm:"type:decimal(18,0)" json:"shares_prior_year"`
	SharesInsider      *float64 `gorm:"type:decimal(18,0)" json:"shares_insider"`
	SharesTotal        *float64 `gorm:"type:decimal(18,0)" json:"shares_total"`
	AvgVolume          *float64 `gorm:"type:decimal(18,0)" json:"avg_volume"`
	DaysSinceDisclosure *int    `json:"days_since_disclosure"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s *FinancialSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (FinancialSnapshot) TableName() string {
	return "financial_snapshots"
}

// PersonnelRecord 主体管理团队成员记录
type PersonnelRecord struct {
	ID             string   `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey      string   `gorm:"type:varchar(20);index;not null" json:"entity_key"`
	Name           string   `json:"name"`
	TenureYears    float64  `gorm:"type:decimal(6,2)" json:"tenure_years"`       // 在职年限
	PriorCompanies []string `gorm:"type:jsonb;serializer:json" json:"prior_companies"`
	Education      string   `gorm:"type:text" json:"education"`
	Specialization string   `gorm:"type:text" json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p *PersonnelRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (PersonnelRecord) TableName() string {
	return "personnel_records"
}

// DisclosureRecord 主体信息披露记录
type DisclosureRecord struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey string    `gorm:"type:varchar(20);index;not null" json:"entity_key"`
	Type      string    `gorm:"type:varchar(50)" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Material  bool      `gorm:"default:false" json:"material"` // 是否重大事项
	CreatedAt time.Time `json:"created_at"`
}

func (d *DisclosureRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

func (DisclosureRecord) TableName() string {
	return "disclosure_records"
}
