package handler

import (
	"net/http"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description"`
		Phone       string  `json:"phone"`
		Email       string  `json:"email" validate:"omitempty,email"`
		Lat         float64 `json:"lat" validate:"latitude"`
		Lon         float64 `json:"lon" validate:"longitude"`
		Radius      float64 `json:"radius" validate:"gte=0"`
		Address     string  `json:"address"`
		ColorCode   string  `json:"colorCode"`
		Code        string  `json:"code"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Location: domain.JobLocation{
			Lat:     req.Lat,
			Lon:     req.Lon,
			Radius:  req.Radius,
			Address: req.Address,
		},
		ColorCode: req.ColorCode,
		Code:      req.Code,
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job created", job)
}

func (h *Handler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.repository.GetAllJobs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "jobs retrieved", jobs)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)
	h.successResponse(w, r, "job retrieved", job)
}
