package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-clash/internal/profile"
	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

type speciesView struct {
	Key       string                        `json:"key"`
	Name      string                        `json:"name"`
	Variant   string                        `json:"variant"`
	MinWeight float64                       `json:"minWeight"`
	MaxWeight float64                       `json:"maxWeight"`
	Prefs     map[tackle.Dimension][]string `json:"prefs"`
}

type createProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
	Avatar  string `json:"avatar"`
}

func SetupRouter(hub *Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", healthHandler(hub))

	api := r.Group("/api")
	api.GET("/species", speciesHandler(hub.species))
	api.GET("/tackle", tackleHandler(hub.shop))
	api.GET("/lobby", func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.LobbyStatus(false))
	})
	api.POST("/profiles", createProfileHandler(hub))
	api.GET("/profiles/:id", getProfileHandler(hub.profiles))

	r.GET("/ws", HandleWebSocket(hub))

	return r
}

func healthHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": hub.Sessions()})
	}
}

func speciesHandler(catalog *species.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		found := catalog.Search(c.Query("q"))
		out := make([]speciesView, 0, len(found))
		for _, s := range found {
			v := speciesView{
				Key:       s.Key(),
				Name:      s.Name,
				Variant:   s.Variant,
				MinWeight: s.MinWeight,
				MaxWeight: s.MaxWeight,
				Prefs:     make(map[tackle.Dimension][]string, len(tackle.Dimensions)),
			}
			for _, d := range tackle.Dimensions {
				v.Prefs[d] = s.Prefs.Values(d)
			}
			out = append(out, v)
		}
		c.JSON(http.StatusOK, out)
	}
}

func tackleHandler(shop tackle.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make(map[tackle.Dimension][]string, len(tackle.Dimensions))
		for _, d := range tackle.Dimensions {
			out[d] = shop.Values(d)
		}
		c.JSON(http.StatusOK, out)
	}
}

func createProfileHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorPayload{Code: ErrCodeBadRequest, Message: err.Error()})
			return
		}
		req.Name = truncateName(req.Name)
		p, err := hub.profiles.Create(req.Name, req.Country, req.Avatar)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorPayload(err))
			return
		}
		hub.logger.Info("Profile created", "profile", p.ID, "name", p.Name)
		c.JSON(http.StatusCreated, p)
	}
}

func getProfileHandler(profiles *profile.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := profiles.Get(c.Param("id"))
		if errors.Is(err, profile.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorPayload(err))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorPayload(err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
