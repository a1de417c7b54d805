package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func gatherNames(reg *prometheus.Registry) map[string]*dto.MetricFamily {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the varsity namespace is used", func() {
				So(manager, ShouldNotBeNil)
				manager.valuationsComputed.WithLabelValues("football").Inc()
				families := gatherNames(registry)
				So(families, ShouldContainKey, "varsity_valuation_valuations_computed_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.valuationLatency.Observe(3)
			manager.workerCount.Set(4)

			Convey("Then names, buckets and labels follow the options", func() {
				families := gatherNames(registry)
				So(families, ShouldContainKey, "test_sub_valuation_latency_milliseconds")
				h := families["test_sub_valuation_latency_milliseconds"].GetMetric()[0]
				So(len(h.GetHistogram().GetBucket()), ShouldEqual, 3)
				So(h.GetLabel()[0].GetName(), ShouldEqual, "env")
				So(families["test_sub_worker_count"].GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 4)
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "varsity")
				So(manager.subsystem, ShouldEqual, "valuation")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a valuation", func() {
			RecordValuation("basketball", 1.5, 0.8, 125000, 2)
			RecordValuationError("invalid_request")
			RecordUndefinedPosition()
			RecordBatchSize(12)
			RecordReferenceReload("ok")

			Convey("Then the series appear in the custom registry", func() {
				families := gatherNames(GetRegistry())
				So(families, ShouldContainKey, "varsity_valuation_valuations_computed_total")
				So(families, ShouldContainKey, "varsity_valuation_valuation_errors_total")
				So(families, ShouldContainKey, "varsity_valuation_war")
				So(families, ShouldContainKey, "varsity_valuation_combined_value_dollars")
				So(families, ShouldContainKey, "varsity_valuation_reference_reloads_total")
				So(families["varsity_valuation_valuation_warnings_total"].GetMetric()[0].GetCounter().GetValue(), ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When recording operational metrics", func() {
			So(func() {
				RecordJobDuplicate()
				UpdateWorkerCount(8)
				UpdateStoreRecords(10)
				UpdateStoreShards(4)
				UpdateQueueSize(3)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.03)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordWorkerProcessingLatency(2.5)
				RecordWorkerError()
				RecordHTTPRequest("/valuations", "POST", "202")
				RecordHTTPRequestDuration("/valuations", "POST", "202", 1.2)
				RecordErrorByEndpoint("/valuations", "POST", "invalid_request")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)

			Convey("Then gauges hold the last value", func() {
				families := gatherNames(GetRegistry())
				So(families["varsity_valuation_store_records_total"].GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 10)
				So(families["varsity_valuation_queue_capacity"].GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 100)
			})
		})
	})
}
