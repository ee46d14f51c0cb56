package handler

import (
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type supervisorSignupRequest struct {
	SupervisorID   string `json:"supervisor_id" validate:"required"`
	SupervisorName string `json:"supervisor_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Phone          string `json:"phone" validate:"required"`
	Department     string `json:"department" validate:"required"`
	Region         string `json:"region" validate:"required"`
	AccessLevel    string `json:"access_level" validate:"omitempty,oneof=supervisor manager"`
}

func (r supervisorSignupRequest) toInput() ports.SupervisorSignupInput {
	return ports.SupervisorSignupInput{
		SupervisorID:   r.SupervisorID,
		SupervisorName: r.SupervisorName,
		Email:          r.Email,
		Password:       r.Password,
		Phone:          r.Phone,
		Department:     r.Department,
		Region:         r.Region,
		AccessLevel:    r.AccessLevel,
	}
}

type supervisorUpdateRequest struct {
	SupervisorName string   `json:"supervisor_name"`
	Phone          string   `json:"phone"`
	Department     string   `json:"department"`
	Region         string   `json:"region"`
	PriorityAreas  []string `json:"priority_areas"`
}

func (r supervisorUpdateRequest) toInput() ports.SupervisorUpdateInput {
	return ports.SupervisorUpdateInput{
		SupervisorName: r.SupervisorName,
		Phone:          r.Phone,
		Department:     r.Department,
		Region:         r.Region,
		PriorityAreas:  r.PriorityAreas,
	}
}

type followUpTaskRequest struct {
	Description string    `json:"description" validate:"required"`
	AssignedTo  string    `json:"assigned_to" validate:"required"`
	DueDate     time.Time `json:"due_date"`
}

func (r followUpTaskRequest) toTask() domain.FollowUpTask {
	return domain.FollowUpTask{
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		DueDate:     r.DueDate,
	}
}

type taskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

type expertRefRequest struct {
	ExpertID string `json:"expert_id" validate:"required"`
}
