package recruiter

import (
	"errors"
	"net/http"
	"strconv"

	"hireview/internal/dto"
	"hireview/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type JobController struct {
	jobService service.RecruiterJobService
}

func NewJobController(jobService service.RecruiterJobService) *JobController {
	return &JobController{jobService: jobService}
}

// ListJobs godoc
// @Summary (Recruiter) List jobs with application counts
// @Tags Recruiter - Jobs
// @Produce json
// @Param recruiterId query int true "Recruiter ID"
// @Success 200 {object} dto.ApiResponse{data=[]dto.JobDetailDTO}
// @Failure 400 {object} dto.ApiResponse "Missing or invalid recruiter ID"
// @Router /recruiter/jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	recruiterIDStr := ctx.Query("recruiterId")
	if recruiterIDStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Recruiter ID required"))
		return
	}
	recruiterID, err := strconv.ParseUint(recruiterIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid recruiter ID format"))
		return
	}

	jobs, err := c.jobService.ListJobs(uint(recruiterID))
	if err != nil {
		log.Error().Err(err).Uint64("recruiterID", recruiterID).Msg("ListJobs: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, jobs, ""))
}

// CreateJob godoc
// @Summary (Recruiter) Create a job posting with its timed questions
// @Description Creates the job plus its question set and generates the shareable interview link.
// @Tags Recruiter - Jobs
// @Accept json
// @Produce json
// @Param job body dto.JobCreateDTO true "Job and questions"
// @Success 201 {object} dto.ApiResponse{data=dto.JobDetailDTO}
// @Failure 400 {object} dto.ApiResponse "Invalid input"
// @Router /recruiter/jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.JobCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateJob: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid request body"))
		return
	}

	job, err := c.jobService.CreateJob(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateJob: service error")
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(http.StatusCreated, job, "Job created successfully"))
}

// UpdateJob godoc
// @Summary (Recruiter) Update a job and replace its question set
// @Description Rejected once the job has applications; questions are immutable while an interview is underway.
// @Tags Recruiter - Jobs
// @Accept json
// @Produce json
// @Param job body dto.JobUpdateDTO true "Job ID, metadata and full question set"
// @Success 200 {object} dto.ApiResponse{data=dto.JobDetailDTO}
// @Failure 400 {object} dto.ApiResponse "Invalid input"
// @Failure 404 {object} dto.ApiResponse "Job not found"
// @Failure 409 {object} dto.ApiResponse "Job already has applications"
// @Router /recruiter/jobs [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	var req dto.JobUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid request body"))
		return
	}

	job, err := c.jobService.UpdateJob(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Job not found"))
		case errors.Is(err, service.ErrJobLocked):
			ctx.JSON(http.StatusConflict, dto.Failure(http.StatusConflict, err.Error()))
		default:
			log.Error().Err(err).Uint("jobID", req.JobID).Msg("UpdateJob: service error")
			ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, err.Error()))
		}
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, job, "Job updated successfully"))
}

// DeleteJob godoc
// @Summary (Recruiter) Delete a job
// @Tags Recruiter - Jobs
// @Produce json
// @Param jobId query int true "Job ID"
// @Success 200 {object} dto.ApiResponse
// @Failure 400 {object} dto.ApiResponse "Missing or invalid job ID"
// @Failure 404 {object} dto.ApiResponse "Job not found"
// @Router /recruiter/jobs [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	jobIDStr := ctx.Query("jobId")
	if jobIDStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Job ID required"))
		return
	}
	jobID, err := strconv.ParseUint(jobIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid job ID format"))
		return
	}

	if err := c.jobService.DeleteJob(uint(jobID)); err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Job not found"))
			return
		}
		log.Error().Err(err).Uint64("jobID", jobID).Msg("DeleteJob: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, nil, "Job deleted successfully"))
}
