package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VideosProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poses_videos_processed_total",
		Help: "Total number of videos processed, by outcome",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poses_stage_duration_seconds",
		Help:    "Duration of each pipeline stage per video",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	FramesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poses_frames_scanned_total",
		Help: "Total number of decoded frames submitted to the detector",
	})

	LandmarksCapturedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poses_landmarks_captured_total",
		Help: "Total number of landmarks captured across all videos",
	})

	RowsInsertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poses_rows_inserted_total",
		Help: "Total number of keypoint rows newly inserted into the store",
	})

	RowsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poses_rows_skipped_total",
		Help: "Total number of keypoint rows dropped as duplicates",
	})

	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "poses_active_workers",
		Help: "Number of workers currently processing a video",
	})
)
