package models

import "time"

type User struct {
	ID           string     `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Address      *string    `db:"address"`
	BirthDate    *time.Time `db:"birth_date"`
	Gender       *string    `db:"gender"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type Project struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Type              string     `db:"type"`
	Location          *string    `db:"location"`
	StartDate         *time.Time `db:"start_date"`
	EndDate           *time.Time `db:"end_date"`
	Status            string     `db:"status"`
	Budget            *float64   `db:"budget"`
	Manager           *string    `db:"manager"`
	CompletionPercent int        `db:"completion_percent"`
	Description       *string    `db:"description"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type Task struct {
	ID          string     `db:"id"`
	ProjectCode string     `db:"project_code"`
	TaskCode    string     `db:"task_code"`
	TaskType    string     `db:"task_type"`
	Floor       *string    `db:"floor"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	SiteName    *string    `db:"site_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type Equipment struct {
	ID                  string     `db:"id"`
	Name                string     `db:"name"`
	Type                string     `db:"type"`
	Status              string     `db:"status"`
	Condition           string     `db:"condition"`
	Location            *string    `db:"location"`
	PurchaseDate        *time.Time `db:"purchase_date"`
	LastMaintenanceDate *time.Time `db:"last_maintenance_date"`
	RentalStart         *time.Time `db:"rental_start"`
	RentalEnd           *time.Time `db:"rental_end"`
	Vendor              *string    `db:"vendor"`
	RentalCost          *float64   `db:"rental_cost"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

type Expense struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	Amount        float64    `db:"amount"`
	Category      string     `db:"category"`
	ExpenseDate   time.Time  `db:"expense_date"`
	PaymentMethod string     `db:"payment_method"`
	ProjectID     *string    `db:"project_id"`
	Description   *string    `db:"description"`
	Receipt       *string    `db:"receipt"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type LabourAssignment struct {
	ID                string    `db:"id"`
	ProjectCode       string    `db:"project_code"`
	TaskCode          string    `db:"task_code"`
	LabourType        string    `db:"labour_type"`
	NumberOfLabourers int       `db:"number_of_labourers"`
	AssignmentDate    time.Time `db:"assignment_date"`
	SiteName          *string   `db:"site_name"`
	Supervisor        *string   `db:"supervisor"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type Purchase struct {
	ID           string    `db:"id"`
	ProjectCode  string    `db:"project_code"`
	MaterialType string    `db:"material_type"`
	Quantity     float64   `db:"quantity"`
	Unit         string    `db:"unit"`
	Price        float64   `db:"price"`
	Description  *string   `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Inquiry struct {
	ID          string    `db:"id"`
	PackageType string    `db:"package_type"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Message     string    `db:"message"`
	CreatedAt   time.Time `db:"created_at"`
}

type Notification struct {
	ID        string    `db:"id"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	IsRead    bool      `db:"is_read"`
	ProjectID *string   `db:"project_id"`
	InquiryID *string   `db:"inquiry_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ServerMetricSample struct {
	ID                 string    `db:"id"`
	CapturedAt         time.Time `db:"captured_at"`
	ProcessMemoryBytes int64     `db:"process_memory_bytes"`
	SystemMemoryTotal  int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed   int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes     int64     `db:"disk_total_bytes"`
	DiskUsedBytes      int64     `db:"disk_used_bytes"`
	ProcessCpuLoad     float64   `db:"process_cpu_load"`
	SystemCpuLoad      float64   `db:"system_cpu_load"`
}
