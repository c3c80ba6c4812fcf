package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCodeClass(t *testing.T) {
	for status, want := range map[int]string{200: "2xx", 304: "3xx", 400: "4xx", 404: "4xx", 502: "5xx"} {
		if got := CodeClass(status); got != want {
			t.Errorf("CodeClass(%d) = %s, want %s", status, got, want)
		}
	}
}

func TestHardFailureCounter(t *testing.T) {
	before := testutil.ToFloat64(DatasetHardFailures.WithLabelValues("detail"))
	DatasetHardFailures.WithLabelValues("detail").Inc()
	if got := testutil.ToFloat64(DatasetHardFailures.WithLabelValues("detail")); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}
