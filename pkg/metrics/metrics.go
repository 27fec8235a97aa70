package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SectionReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "section_reads_total", Help: "Number of section document reads by section name."},
		[]string{"section"},
	)
	SectionWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "section_writes_total", Help: "Number of section document writes by section name."},
		[]string{"section"},
	)
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "uploads_total", Help: "Number of object-store uploads by section name."},
		[]string{"section"},
	)
	UploadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "upload_errors_total", Help: "Number of failed object-store uploads by section name."},
		[]string{"section"},
	)
	RenderRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "folio", Name: "render_refreshes_total", Help: "Number of public-view rebuilds after the revalidation window lapsed."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SectionReads)
	reg.MustRegister(SectionWrites)
	reg.MustRegister(Uploads)
	reg.MustRegister(UploadErrors)
	reg.MustRegister(RenderRefreshes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
