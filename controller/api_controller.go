package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/logger"
	"github.com/cuducos/astronomer/model"
	"github.com/cuducos/astronomer/service"
	"github.com/gin-gonic/gin"
)

var errMissingLogin = errors.New("missing login")

type APIController interface {
	GetUser(ctx *gin.Context)
	Home(ctx *gin.Context)
}

type apiController struct {
	starsService service.StarsService
	config       config.Config
}

func NewAPIController(config config.Config, service service.StarsService) APIController {
	return apiController{
		starsService: service,
		config:       config,
	}
}

// GetUser serve /:login.json with the languages ranking and /:login with the HTML page
func (s apiController) GetUser(c *gin.Context) {
	login := c.Param("login")

	if name, isJSON := strings.CutSuffix(login, ".json"); isJSON {
		s.getUserStars(c, name)
		return
	}

	c.HTML(http.StatusOK, "user.html", gin.H{
		"Login": login,
	})
}

// Home redirect to the page of the default user
func (s apiController) Home(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/"+s.config.API.DefaultLogin)
}

func (s apiController) getUserStars(c *gin.Context, login string) {
	if login == "" {
		c.JSON(http.StatusBadRequest, model.NewInvalidQueryError(errMissingLogin))
		return
	}

	var resultQuery model.ResultQuery
	if err := c.ShouldBindQuery(&resultQuery); err != nil {
		c.JSON(http.StatusBadRequest, model.NewInvalidQueryError(err))
		return
	}

	// execute the request
	result, err := s.starsService.GetAccountResult(c.Request.Context(), login, resultQuery.RepositoryStatus())
	if err != nil {
		logger.ForRequest(c).WithError(err).WithField("login", login).Error("unable to compute languages stars")
		c.JSON(http.StatusInternalServerError, model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, resultQuery.Apply(result))
}
