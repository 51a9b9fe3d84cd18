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

type SubmissionController struct {
	submissionService service.RecruiterSubmissionService
}

func NewSubmissionController(submissionService service.RecruiterSubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// ListSubmissions godoc
// @Summary (Recruiter) List applications for a job
// @Tags Recruiter - Submissions
// @Produce json
// @Param jobId query int true "Job ID"
// @Success 200 {object} dto.ApiResponse{data=[]dto.SubmissionSummaryDTO}
// @Failure 400 {object} dto.ApiResponse "Missing or invalid job ID"
// @Router /recruiter/submissions [get]
func (c *SubmissionController) ListSubmissions(ctx *gin.Context) {
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

	submissions, err := c.submissionService.ListByJob(uint(jobID))
	if err != nil {
		log.Error().Err(err).Uint64("jobID", jobID).Msg("ListSubmissions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, submissions, ""))
}

// GetSubmission godoc
// @Summary (Recruiter) Review one candidate's submission for a job
// @Description Returns the application with the candidate, the job's ordered questions, and the selected video per question.
// @Tags Recruiter - Submissions
// @Produce json
// @Param candidateId path int true "Candidate ID"
// @Param jobId query int true "Job ID"
// @Success 200 {object} dto.ApiResponse{data=dto.SubmissionDetailDTO}
// @Failure 400 {object} dto.ApiResponse "Missing or invalid IDs"
// @Failure 404 {object} dto.ApiResponse "Submission not found"
// @Router /recruiter/submissions/{candidateId} [get]
func (c *SubmissionController) GetSubmission(ctx *gin.Context) {
	candidateIDStr := ctx.Param("candidateId")
	candidateID, err := strconv.ParseUint(candidateIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid candidate ID format"))
		return
	}

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

	submission, err := c.submissionService.GetDetail(uint(candidateID), uint(jobID))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Submission not found"))
			return
		}
		log.Error().Err(err).Uint64("candidateID", candidateID).Uint64("jobID", jobID).Msg("GetSubmission: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, submission, ""))
}
