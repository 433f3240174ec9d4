package service

import (
	"context"
	"errors"
	"time"

	"ai-coaching-be/internal/dto"
	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.CreateTaskResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TaskResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskRequest) error
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory) ITaskService {
	return &taskService{uowFactory: uowFactory}
}

func (s *taskService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.CreateTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task := &entity.Task{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		ContactId:   req.ContactId,
		DueDate:     req.DueDate,
		Status:      entity.TaskStatusOpen,
		CreatedAt:   time.Now(),
	}
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	return &dto.CreateTaskResponse{Id: task.Id}, nil
}

func (s *taskService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		res = append(res, &dto.TaskResponse{
			Id:          task.Id,
			Title:       task.Title,
			Description: task.Description,
			ContactId:   task.ContactId,
			DueDate:     task.DueDate,
			Status:      string(task.Status),
			CreatedAt:   task.CreatedAt,
		})
	}
	return res, nil
}

func (s *taskService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if task == nil {
		return errors.New("task not found")
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
	}
	now := time.Now()
	task.UpdatedAt = &now

	return uow.TaskRepository().Update(ctx, task)
}
