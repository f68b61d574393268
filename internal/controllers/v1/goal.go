package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterSavingGoalRoutes registers the routes for saving goals with
// the RouterGroup that is passed.
func RegisterSavingGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSavingGoalList)
		r.GET("", GetSavingGoals)
		r.POST("", CreateSavingGoal)
	}

	// SavingGoal with ID
	{
		r.OPTIONS("/:id", OptionsSavingGoalDetail)
		r.GET("/:id", GetSavingGoal)
		r.PATCH("/:id", UpdateSavingGoal)
		r.DELETE("/:id", DeleteSavingGoal)
	}

	// Amount changes
	{
		r.OPTIONS("/:id/contribute", OptionsSavingGoalAmount)
		r.POST("/:id/contribute", ContributeSavingGoal)
		r.OPTIONS("/:id/withdraw", OptionsSavingGoalAmount)
		r.POST("/:id/withdraw", WithdrawSavingGoal)
	}

	// Contribution history
	{
		r.OPTIONS("/:id/contributions", OptionsSavingGoalContributions)
		r.GET("/:id/contributions", GetSavingGoalContributions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingGoals
// @Success		204
// @Router			/v1/saving-goals [options]
func OptionsSavingGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/saving-goals/{id} [options]
func OptionsSavingGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, &models.SavingGoal{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/saving-goals/{id}/contribute [options]
func OptionsSavingGoalAmount(c *gin.Context) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/saving-goals/{id}/contributions [options]
func OptionsSavingGoalContributions(c *gin.Context) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create saving goal
// @Description	Creates a new saving goal with a current amount of zero
// @Tags			SavingGoals
// @Produce		json
// @Success		201		{object}	SavingGoalResponse
// @Failure		400		{object}	SavingGoalResponse
// @Failure		500		{object}	SavingGoalResponse
// @Param			goal	body		SavingGoalEditable	true	"SavingGoal"
// @Router			/v1/saving-goals [post]
func CreateSavingGoal(c *gin.Context) {
	var editable SavingGoalEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	goal := models.SavingGoal{
		UserID:        owner(c),
		Name:          editable.Name,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      editable.Deadline,
	}

	err = models.DB.Create(&goal).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingGoal(c, goal)
	c.JSON(http.StatusCreated, SavingGoalResponse{Data: &data})
}

// @Summary		Get saving goals
// @Description	Returns the saving goals of the user, newest first
// @Tags			SavingGoals
// @Produce		json
// @Success		200	{object}	SavingGoalListResponse
// @Failure		500	{object}	SavingGoalListResponse
// @Router			/v1/saving-goals [get]
func GetSavingGoals(c *gin.Context) {
	goals, err := models.SavingGoalsFor(owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SavingGoal, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newSavingGoal(c, goal))
	}

	c.JSON(http.StatusOK, SavingGoalListResponse{Data: data})
}

// @Summary		Get saving goal
// @Description	Returns a specific saving goal
// @Tags			SavingGoals
// @Produce		json
// @Success		200	{object}	SavingGoalResponse
// @Failure		400	{object}	SavingGoalResponse
// @Failure		404	{object}	SavingGoalResponse
// @Failure		500	{object}	SavingGoalResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/saving-goals/{id} [get]
func GetSavingGoal(c *gin.Context) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	data := newSavingGoal(c, goal)
	c.JSON(http.StatusOK, SavingGoalResponse{Data: &data})
}

// @Summary		Update saving goal
// @Description	Updates name, target amount and deadline of a saving goal. The target can not be lowered below the current amount
// @Tags			SavingGoals
// @Produce		json
// @Success		200		{object}	SavingGoalResponse
// @Failure		400		{object}	SavingGoalResponse
// @Failure		404		{object}	SavingGoalResponse
// @Failure		500		{object}	SavingGoalResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			goal	body		SavingGoalEditable	true	"SavingGoal"
// @Router			/v1/saving-goals/{id} [patch]
func UpdateSavingGoal(c *gin.Context) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	var editable SavingGoalEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	err = goal.UpdateTarget(editable.Name, editable.TargetAmount, editable.Deadline)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingGoal(c, goal)
	c.JSON(http.StatusOK, SavingGoalResponse{Data: &data})
}

// @Summary		Delete saving goal
// @Description	Deletes a saving goal
// @Tags			SavingGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/saving-goals/{id} [delete]
func DeleteSavingGoal(c *gin.Context) {
	deleteOwnedResource(c, &models.SavingGoal{})
}

// @Summary		Contribute to saving goal
// @Description	Adds an amount to the saved amount of a goal
// @Tags			SavingGoals
// @Produce		json
// @Success		200		{object}	SavingGoalResponse
// @Failure		400		{object}	SavingGoalResponse
// @Failure		404		{object}	SavingGoalResponse
// @Failure		500		{object}	SavingGoalResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			amount	body		SavingGoalAmount	true	"Amount"
// @Router			/v1/saving-goals/{id}/contribute [post]
func ContributeSavingGoal(c *gin.Context) {
	changeSavingGoalAmount(c, (*models.SavingGoal).Contribute)
}

// @Summary		Withdraw from saving goal
// @Description	Takes an amount from the saved amount of a goal. The amount must not exceed what is saved
// @Tags			SavingGoals
// @Produce		json
// @Success		200		{object}	SavingGoalResponse
// @Failure		400		{object}	SavingGoalResponse
// @Failure		404		{object}	SavingGoalResponse
// @Failure		500		{object}	SavingGoalResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			amount	body		SavingGoalAmount	true	"Amount"
// @Router			/v1/saving-goals/{id}/withdraw [post]
func WithdrawSavingGoal(c *gin.Context) {
	changeSavingGoalAmount(c, (*models.SavingGoal).Withdraw)
}

// @Summary		Get contribution history
// @Description	Returns the contributions and withdrawals of a saving goal, newest first
// @Tags			SavingGoals
// @Produce		json
// @Success		200	{object}	GoalContributionListResponse
// @Failure		400	{object}	GoalContributionListResponse
// @Failure		404	{object}	GoalContributionListResponse
// @Failure		500	{object}	GoalContributionListResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/saving-goals/{id}/contributions [get]
func GetSavingGoalContributions(c *gin.Context) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	contributions, err := models.ContributionsFor(goal.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalContributionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]GoalContribution, 0, len(contributions))
	for _, contribution := range contributions {
		data = append(data, newGoalContribution(contribution))
	}

	c.JSON(http.StatusOK, GoalContributionListResponse{Data: data})
}

func changeSavingGoalAmount(c *gin.Context, change func(*models.SavingGoal, decimal.Decimal) error) {
	var goal models.SavingGoal
	if !fetchOwnedResource(c, &goal) {
		return
	}

	var body SavingGoalAmount
	err := httputil.BindData(c, &body)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	err = change(&goal, body.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingGoal(c, goal)
	c.JSON(http.StatusOK, SavingGoalResponse{Data: &data})
}
