package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// commitsTotal counts pipeline runs by operation and result (success, invalid, error)
var commitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_commits_total",
	Help: "Campaign pipeline runs by operation and result",
}, []string{"operation", "result"})
