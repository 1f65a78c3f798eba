package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/connectcc/auditions/internal/domain"
)

type loginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type evaluationRequest struct {
	Scores   []domain.MarkingCriterion `json:"scores"`
	Feedback string                    `json:"evaluatedByText"`
}

type scorecardResponse struct {
	Contestant           domain.Contestant         `json:"contestant"`
	Criteria             []domain.MarkingCriterion `json:"criteria"`
	Source               string                    `json:"source"`
	Questions            []string                  `json:"questions"`
	QuestionsUnavailable bool                      `json:"questionsUnavailable"`
}

type leaderboardEntry struct {
	Rank              int     `json:"rank"`
	Roll              string  `json:"roll"`
	Name              string  `json:"name"`
	PreferredPosition string  `json:"preferredposition"`
	Score             float64 `json:"score"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errors.New("malformed request body"))
	}

	token, err := s.access.Login(req.Role, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return errorJSON(c, fiber.StatusBadRequest, err)
	case errors.Is(err, domain.ErrBadCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, err)
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(loginResponse{Token: token, Role: req.Role})
}

func (s *Server) handleGetContestant(c *fiber.Ctx) error {
	record, err := s.eval.Lookup(c.Context(), c.Params("roll"))
	if errors.Is(err, domain.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err)
	}
	return c.JSON(record)
}

func (s *Server) handleScorecard(c *fiber.Ctx) error {
	card, err := s.eval.BuildScorecard(c.Context(), c.Params("roll"))
	if errors.Is(err, domain.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err)
	}

	questions := card.Questions
	if questions == nil {
		questions = []string{}
	}
	return c.JSON(scorecardResponse{
		Contestant:           card.Contestant,
		Criteria:             card.Criteria,
		Source:               card.Source,
		Questions:            questions,
		QuestionsUnavailable: card.QuestionsUnavailable,
	})
}

func (s *Server) handleSubmitEvaluation(c *fiber.Ctx) error {
	var req evaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errors.New("malformed request body"))
	}

	// Params returns a string aliasing fasthttp's reusable request buffer;
	// it must be copied before it can outlive the handler as a store key.
	saved, err := s.eval.Submit(c.Context(), strings.Clone(c.Params("roll")), req.Scores, req.Feedback)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "validation failed",
			"details": verr.Errors,
		})
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, err)
	case err != nil:
		return errorJSON(c, fiber.StatusBadGateway, err)
	}

	return c.JSON(saved)
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	summary, err := s.dashboard.Summary(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err)
	}
	return c.JSON(summary)
}

// handleAdminContestants serves the full roster, including each saved
// scorecard and feedback text, so admins can review evaluations without a
// panel token.
func (s *Server) handleAdminContestants(c *fiber.Ctx) error {
	records, err := s.dashboard.Contestants(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err)
	}
	return c.JSON(fiber.Map{"contestants": records})
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	if err := s.dashboard.ResetAll(c.Context()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleLeaderboard(c *fiber.Ctx) error {
	board, err := s.dashboard.Leaderboard(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err)
	}

	entries := make([]leaderboardEntry, 0, len(board))
	for i, record := range board {
		entries = append(entries, leaderboardEntry{
			Rank:              i + 1,
			Roll:              record.Roll,
			Name:              record.Name,
			PreferredPosition: record.PreferredPosition,
			Score:             *record.Score,
		})
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}
