package candidate

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"hireview/internal/dto"
	"hireview/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CandidateController struct {
	jobService        service.CandidateJobService
	submissionService service.SubmissionService
}

func NewCandidateController(jobService service.CandidateJobService, submissionService service.SubmissionService) *CandidateController {
	return &CandidateController{jobService: jobService, submissionService: submissionService}
}

// GetJob godoc
// @Summary (Candidate) Fetch the interview definition behind a share link
// @Description Resolves a share link to the job and its questions, ordered by order index. Inactive or unknown links return 404.
// @Tags Candidate
// @Produce json
// @Param linkId query string true "Share link ID"
// @Success 200 {object} dto.ApiResponse{data=dto.JobResponseDTO}
// @Failure 400 {object} dto.ApiResponse "Missing linkId"
// @Failure 404 {object} dto.ApiResponse "Job not found or link inactive"
// @Router /candidate/job [get]
func (c *CandidateController) GetJob(ctx *gin.Context) {
	linkID := ctx.Query("linkId")
	if linkID == "" {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Link ID required"))
		return
	}

	job, err := c.jobService.GetJobByLink(linkID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Job not found"))
			return
		}
		log.Error().Err(err).Str("linkID", linkID).Msg("Candidate GetJob: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, job, ""))
}

// SubmitResponse godoc
// @Summary (Candidate) Upload the selected take for one question
// @Description Multipart upload of one video answer. Lazily creates the candidate and application records, stores the artifact, and records the video response. Retried uploads for the same question replace the earlier artifact.
// @Tags Candidate
// @Accept mpfd
// @Produce json
// @Param video formData file true "Video file"
// @Param jobId formData int true "Job ID"
// @Param candidateName formData string true "Candidate name"
// @Param candidateEmail formData string true "Candidate email"
// @Param questionId formData int true "Question ID"
// @Param duration formData int false "Recorded duration in seconds"
// @Success 201 {object} dto.ApiResponse{data=dto.VideoResponseDTO}
// @Failure 400 {object} dto.ApiResponse "Missing required fields"
// @Failure 404 {object} dto.ApiResponse "Job or question not found"
// @Failure 500 {object} dto.ApiResponse "Storage or persistence failure"
// @Router /candidate/submit [post]
func (c *CandidateController) SubmitResponse(ctx *gin.Context) {
	jobIDStr := ctx.PostForm("jobId")
	candidateName := ctx.PostForm("candidateName")
	candidateEmail := ctx.PostForm("candidateEmail")
	questionIDStr := ctx.PostForm("questionId")
	durationStr := ctx.PostForm("duration")

	fileHeader, fileErr := ctx.FormFile("video")
	if jobIDStr == "" || candidateName == "" || candidateEmail == "" || questionIDStr == "" || fileErr != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Missing required fields"))
		return
	}

	jobID, err := strconv.ParseUint(jobIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid job ID format"))
		return
	}
	questionID, err := strconv.ParseUint(questionIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid question ID format"))
		return
	}
	duration, _ := strconv.Atoi(durationStr)

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Unreadable video file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Candidate SubmitResponse: failed to read upload body")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, "Failed to read video upload"))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "video/webm"
	}

	videoResponse, err := c.submissionService.SubmitResponse(service.SubmitResponseInput{
		JobID:          uint(jobID),
		QuestionID:     uint(questionID),
		CandidateName:  candidateName,
		CandidateEmail: candidateEmail,
		Duration:       duration,
		MimeType:       mimeType,
		Data:           data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound), errors.Is(err, service.ErrQuestionNotFound):
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, err.Error()))
		default:
			log.Error().Err(err).Uint64("jobID", jobID).Uint64("questionID", questionID).Msg("Candidate SubmitResponse: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(http.StatusCreated, videoResponse, "Video uploaded successfully"))
}

// CompleteApplication godoc
// @Summary (Candidate) Mark an application finished
// @Description Called once, after every per-question upload has been acknowledged. Stamps completedAt if it is not already set; repeated calls are harmless.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param completion body dto.CompleteApplicationDTO true "Candidate email and job ID"
// @Success 200 {object} dto.ApiResponse{data=dto.ApplicationResponseDTO}
// @Failure 400 {object} dto.ApiResponse "Invalid request body"
// @Failure 404 {object} dto.ApiResponse "Candidate or application not found"
// @Router /candidate/complete [post]
func (c *CandidateController) CompleteApplication(ctx *gin.Context) {
	var req dto.CompleteApplicationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Candidate CompleteApplication: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid request body"))
		return
	}

	application, err := c.submissionService.CompleteApplication(req.CandidateEmail, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Candidate not found"))
		case errors.Is(err, service.ErrApplicationNotFound):
			ctx.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "Application not found"))
		default:
			log.Error().Err(err).Str("email", req.CandidateEmail).Uint("jobID", req.JobID).Msg("Candidate CompleteApplication: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, application, "Application completed"))
}
