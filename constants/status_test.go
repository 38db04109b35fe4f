package constants

import "testing"

func TestProgressFor(t *testing.T) {
	cases := []struct {
		status JobStatus
		want   int
	}{
		{JobStatusProcessing, 0},
		{JobStatusAnalyzing, 30},
		{JobStatusCreatingForm, 60},
		{JobStatusCompleted, 100},
		{JobStatusFailed, -1},
		{JobStatus("BOGUS"), -1},
	}
	for _, tc := range cases {
		if got := ProgressFor(tc.status); got != tc.want {
			t.Errorf("ProgressFor(%s) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []JobStatus{JobStatusProcessing, JobStatusAnalyzing, JobStatusCreatingForm} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
	for _, s := range []JobStatus{JobStatusCompleted, JobStatusFailed} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
}

func TestIsAllowedExt(t *testing.T) {
	allowed := []string{".pdf", "pdf", ".PDF", ".docx", ".txt", "TXT"}
	for _, ext := range allowed {
		if !IsAllowedExt(ext) {
			t.Errorf("IsAllowedExt(%q) = false, want true", ext)
		}
	}
	rejected := []string{".exe", ".doc", ".csv", "", ".pdf.exe"}
	for _, ext := range rejected {
		if IsAllowedExt(ext) {
			t.Errorf("IsAllowedExt(%q) = true, want false", ext)
		}
	}
}
