package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"giveaway-engine/internal/common/errors"
	"giveaway-engine/internal/common/middleware"
	emodels "giveaway-engine/internal/features/entry/models"
	"giveaway-engine/internal/features/giveaway/models"
	giveawayservice "giveaway-engine/internal/features/giveaway/service"
)

// statusEventsChannel carries {id, status} notifications for every
// status or timing change, in addition to the per-giveaway topic.
const statusEventsChannel = "giveaway:status"

// Publisher is the pub/sub seam used for status broadcasts. The redis
// client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type GiveawayHandler struct {
	service   giveawayservice.GiveawayService
	publisher Publisher
	logger    zerolog.Logger
}

func NewGiveawayHandler(service giveawayservice.GiveawayService, publisher Publisher, logger zerolog.Logger) *GiveawayHandler {
	return &GiveawayHandler{
		service:   service,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *GiveawayHandler) RegisterRoutes(router *gin.RouterGroup) {
	giveaways := router.Group("/giveaways")
	{
		giveaways.POST("", h.create)
		giveaways.GET("/:id", h.getByID)
		giveaways.PATCH("/:id", h.update)
		giveaways.DELETE("/:id", h.delete)
		giveaways.POST("/:id/join", h.join)
		giveaways.GET("/:id/entries", h.listEntries)
		giveaways.POST("/:id/entries/:entryId/disqualify", h.disqualifyEntry)
		giveaways.POST("/:id/draw", h.draw)
		giveaways.POST("/:id/reroll", h.reroll)
	}

	router.GET("/participations", h.participations)
}

// @Summary Create a giveaway
// @Description Creates a giveaway in draft status with either a fixed deadline or a countdown budget
// @Tags giveaways
// @Accept json
// @Produce json
// @Param input body models.GiveawayCreate true "Giveaway definition"
// @Success 201 {object} models.GiveawayResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /giveaways [post]
func (h *GiveawayHandler) create(c *gin.Context) {
	var input models.GiveawayCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"), h.logger)
		return
	}

	response, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a giveaway
// @Tags giveaways
// @Produce json
// @Param id path string true "Giveaway ID"
// @Success 200 {object} models.GiveawayResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/{id} [get]
func (h *GiveawayHandler) getByID(c *gin.Context) {
	response, err := h.service.GetByID(c.Request.Context(), models.GiveawayID(c.Param("id")))
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a giveaway
// @Description Applies a partial update. Status or timing changes are broadcast to subscribers of the giveaway's topic.
// @Tags giveaways
// @Accept json
// @Produce json
// @Param id path string true "Giveaway ID"
// @Param input body models.GiveawayUpdate true "Fields to change"
// @Success 200 {object} models.GiveawayResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/{id} [patch]
func (h *GiveawayHandler) update(c *gin.Context) {
	var upd models.GiveawayUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"), h.logger)
		return
	}

	id := models.GiveawayID(c.Param("id"))
	response, broadcast, err := h.service.Update(c.Request.Context(), id, &upd)
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	if broadcast != nil {
		h.publish(c, broadcast)
	}

	c.JSON(http.StatusOK, response)
}

// publish pushes the broadcast to the giveaway's topic and a compact
// {id, status} event to the shared status channel. Publish failures are
// logged and swallowed; the update itself already succeeded.
func (h *GiveawayHandler) publish(c *gin.Context, broadcast *models.StatusBroadcast) {
	ctx := c.Request.Context()

	payload, err := json.Marshal(broadcast)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to encode status broadcast")
		return
	}

	if err := h.publisher.Publish(ctx, broadcast.Topic(), payload).Err(); err != nil {
		h.logger.Warn().Err(err).
			Str("topic", broadcast.Topic()).
			Msg("Failed to publish status broadcast")
	}

	event := fmt.Sprintf(`{"id":%q,"status":%q}`, broadcast.ID, broadcast.Status)
	if err := h.publisher.Publish(ctx, statusEventsChannel, event).Err(); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to publish status event")
	}
}

// @Summary Delete a giveaway
// @Description Deletes the giveaway and all of its entries. Entries are removed first; if that fails nothing is deleted.
// @Tags giveaways
// @Param id path string true "Giveaway ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /giveaways/{id} [delete]
func (h *GiveawayHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), models.GiveawayID(c.Param("id"))); err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Join a giveaway
// @Description Registers an entry for a logged-in user or an anonymous participant. The giveaway must be active and inside its entry window.
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Giveaway ID"
// @Param input body emodels.ParticipantIdentity true "Exactly one of user_id or anon_id"
// @Success 201 {object} emodels.EntryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /giveaways/{id}/join [post]
func (h *GiveawayHandler) join(c *gin.Context) {
	var participant emodels.ParticipantIdentity
	if err := c.ShouldBindJSON(&participant); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"), h.logger)
		return
	}

	response, err := h.service.Join(c.Request.Context(), models.GiveawayID(c.Param("id")), participant)
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List giveaway entries
// @Description Returns all entries in stable creation order, disqualified included.
// @Tags entries
// @Produce json
// @Param id path string true "Giveaway ID"
// @Success 200 {array} emodels.EntryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/{id}/entries [get]
func (h *GiveawayHandler) listEntries(c *gin.Context) {
	responses, err := h.service.ListEntries(c.Request.Context(), models.GiveawayID(c.Param("id")))
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// @Summary Disqualify an entry
// @Description Marks an entry as disqualified so it is excluded from draws and rerolls. The entry record is kept.
// @Tags entries
// @Param id path string true "Giveaway ID"
// @Param entryId path string true "Entry ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/{id}/entries/{entryId}/disqualify [post]
func (h *GiveawayHandler) disqualifyEntry(c *gin.Context) {
	id := models.GiveawayID(c.Param("id"))
	entryID := models.EntryID(c.Param("entryId"))

	if err := h.service.DisqualifyEntry(c.Request.Context(), id, entryID); err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Draw winners
// @Description Runs the seeded deterministic draw over the current eligible entries and persists the result with per-position proofs.
// @Tags draws
// @Produce json
// @Param id path string true "Giveaway ID"
// @Success 200 {object} models.DrawResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /giveaways/{id}/draw [post]
func (h *GiveawayHandler) draw(c *gin.Context) {
	response, err := h.service.Draw(c.Request.Context(), models.GiveawayID(c.Param("id")))
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// rerollRequest names the position to re-select. Position is a pointer so
// binding can tell position 0 apart from an absent field.
type rerollRequest struct {
	Position *int `json:"position" binding:"required"`
}

// @Summary Reroll one winner position
// @Description Re-selects a single winner position from a fresh eligible pool excluding the other winners. Fails with 409 if the pool is empty.
// @Tags draws
// @Accept json
// @Produce json
// @Param id path string true "Giveaway ID"
// @Param input body rerollRequest true "Winner position to reroll (0-based)"
// @Success 200 {object} models.DrawResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /giveaways/{id}/reroll [post]
func (h *GiveawayHandler) reroll(c *gin.Context) {
	var input rerollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, errors.NewValidationError("position", "must be provided"), h.logger)
		return
	}

	response, err := h.service.Reroll(c.Request.Context(), models.GiveawayID(c.Param("id")), *input.Position)
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List a participant's live participations
// @Description Returns the giveaways the participant currently has an eligible entry in, excluding drafts, terminal giveaways and those past their deadline.
// @Tags entries
// @Produce json
// @Param user_id query string false "User ID"
// @Param anon_id query string false "Anonymous ID"
// @Success 200 {array} models.ParticipationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /participations [get]
func (h *GiveawayHandler) participations(c *gin.Context) {
	participant := emodels.ParticipantIdentity{
		UserID: c.Query("user_id"),
		AnonID: c.Query("anon_id"),
	}

	responses, err := h.service.Participations(c.Request.Context(), participant)
	if err != nil {
		middleware.RespondError(c, err, h.logger)
		return
	}

	if responses == nil {
		responses = []*models.ParticipationResponse{}
	}
	c.JSON(http.StatusOK, responses)
}
