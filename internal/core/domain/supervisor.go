package domain

import "time"

// Supervisor access levels.
const (
	AccessSupervisor = "supervisor"
	AccessManager    = "manager"
)

// Follow-up task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Supervisor is the oversight actor. It holds no direct references to CRPs or
// farmers; its reach is derived through experts carrying its SupervisorID.
type Supervisor struct {
	SupervisorID   string `json:"supervisor_id" bson:"supervisor_id"`
	SupervisorName string `json:"supervisor_name" bson:"supervisor_name"`
	Phone          string `json:"phone" bson:"phone"`
	Department     string `json:"department" bson:"department"`
	Region         string `json:"region" bson:"region"`
	AccessLevel    string `json:"access_level" bson:"access_level"`

	PriorityAreas []string       `json:"priority_areas" bson:"priority_areas"`
	FollowUpTasks []FollowUpTask `json:"follow_up_tasks" bson:"follow_up_tasks"`
	ExportHistory []ExportEntry  `json:"export_history" bson:"export_history"`

	Account `bson:",inline"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FollowUpTask is a supervisor-created task assigned to a downstream actor.
type FollowUpTask struct {
	TaskID      string    `json:"task_id" bson:"task_id"`
	Description string    `json:"description" bson:"description"`
	AssignedTo  string    `json:"assigned_to" bson:"assigned_to"`
	DueDate     time.Time `json:"due_date" bson:"due_date"`
	Status      string    `json:"status" bson:"status"`
}

// ExportEntry records one data export performed by the supervisor.
type ExportEntry struct {
	ExportType string    `json:"export_type" bson:"export_type"`
	ExportDate time.Time `json:"export_date" bson:"export_date"`
	FileName   string    `json:"file_name" bson:"file_name"`
}

// FrequencyTable maps a grouping key (district, crop, issue) to a count.
type FrequencyTable map[string]int
