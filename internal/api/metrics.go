package api

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricPalettesGenerated counts palettes generated from the browser
	metricPalettesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swatch_palettes_generated_total",
		Help: "Total palettes generated",
	})

	// metricFavoritesSaved counts save requests, including duplicates
	metricFavoritesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swatch_favorites_saved_total",
		Help: "Total save-favorite requests",
	})

	// metricFavoritesRemoved counts remove requests, including out-of-range ones
	metricFavoritesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swatch_favorites_removed_total",
		Help: "Total remove-favorite requests",
	})

	// metricColorsCopied counts hex codes copied
	metricColorsCopied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swatch_colors_copied_total",
		Help: "Total colors copied to the clipboard",
	})

	// metricFavorites tracks the current number of favorites
	metricFavorites = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swatch_favorites",
		Help: "Current number of saved favorites",
	})

	// metricWebSocketClients tracks connected browser tabs
	metricWebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swatch_websocket_clients",
		Help: "Current websocket connections",
	})
)

// favoritesGauge keeps metricFavorites in step with the session.
type favoritesGauge struct{}

// OnStateChange implements service.StateSubscriber.
func (favoritesGauge) OnStateChange(state model.State) {
	metricFavorites.Set(float64(len(state.Favorites)))
}
