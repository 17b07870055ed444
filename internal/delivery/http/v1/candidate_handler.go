package v1

import (
	"net/http"
	"strconv"

	"go-candidate-backend/internal/delivery/http/middleware"
	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgAddFailed      = "Error adding candidate"
	msgUpdateFailed   = "Error updating candidate"
	msgGetFailed      = "Error retrieving candidate"
	msgDeleteFailed   = "Error deleting candidate"
	msgInvalidID      = "Invalid candidate ID"
	msgCandidateAdded = "Candidate added successfully"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers the candidate routes. writeGuards run before
// the mutating endpoints only.
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, writeGuards ...gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", append(writeGuards, handler.AddCandidate)...)
		candidates.GET("/:id", handler.GetCandidate)
		candidates.PUT("/:id", append(writeGuards, handler.UpdateCandidate)...)
		candidates.DELETE("/:id", append(writeGuards, handler.DeleteCandidate)...)
	}
}

// AddCandidate godoc
// @Summary      Add a candidate
// @Description  Validates the submission and stores the candidate with its educations, work experiences and CV metadata in one transaction
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request body domain.CandidateInput true "Candidate"
// @Success      201  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) AddCandidate(c *gin.Context) {
	var in domain.CandidateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, msgAddFailed, apperror.Validation(validation.MsgInvalidBody))
		return
	}

	candidate, err := h.candidateUC.AddCandidate(c.Request.Context(), &in)
	if err != nil {
		fail(c, msgAddFailed, err)
		return
	}

	response.Success(c, http.StatusCreated, msgCandidateAdded, candidate)
}

// GetCandidate godoc
// @Summary      Get a candidate
// @Description  Returns the candidate with all educations, work experiences and resumes
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, ok := parseID(c, msgGetFailed)
	if !ok {
		return
	}

	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		fail(c, msgGetFailed, err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved successfully", candidate)
}

// UpdateCandidate godoc
// @Summary      Update a candidate
// @Description  Updates names and replaces the supplied collections. Omitted collections are left untouched.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id       path  int                     true  "Candidate ID"
// @Param        request  body  domain.CandidateUpdate  true  "Fields to update"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, ok := parseID(c, msgUpdateFailed)
	if !ok {
		return
	}

	var in domain.CandidateUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, msgUpdateFailed, apperror.Validation(validation.MsgInvalidBody))
		return
	}
	// The path is authoritative.
	in.ID = id

	candidate, err := h.candidateUC.UpdateCandidate(c.Request.Context(), &in)
	if err != nil {
		fail(c, msgUpdateFailed, err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated successfully", candidate)
}

// DeleteCandidate godoc
// @Summary      Delete a candidate
// @Description  Deletes the candidate; educations, work experiences and resumes go with it
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, ok := parseID(c, msgDeleteFailed)
	if !ok {
		return
	}

	if err := h.candidateUC.DeleteCandidate(c.Request.Context(), id); err != nil {
		fail(c, msgDeleteFailed, err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate deleted successfully", nil)
}

// fail hands err to middleware.ErrorHandler together with the operation summary.
func fail(c *gin.Context, summary string, err error) {
	c.Set(middleware.ErrorSummaryKey, summary)
	_ = c.Error(err)
}

func parseID(c *gin.Context, summary string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, summary, apperror.BadRequest(msgInvalidID))
		return 0, false
	}
	return id, true
}
