package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_recipe_operations_total",
		Help: "Committed recipe mutations by operation.",
	}, []string{"operation"})

	ratingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_rating_operations_total",
		Help: "Committed rating mutations by operation.",
	}, []string{"operation"})

	ingredientResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_ingredient_resolutions_total",
		Help: "Ingredient references resolved by name, by outcome.",
	}, []string{"outcome"})

	eventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cookbook_event_publish_failures_total",
		Help: "Domain events that could not be handed to the broker.",
	})
)
