package summary_test

import (
	"testing"

	"datadeck/internal/summary"
	"datadeck/internal/value"
)

func TestPrimaryScalars(t *testing.T) {
	cases := []struct {
		name      string
		val       *value.Value
		agentType string
		want      string
	}{
		{"string passes through", value.String("already readable"), "text", "already readable"},
		{"null is empty", value.Null(), "text", ""},
		{"number renders native form", value.Number(42), "text", "42"},
		{"bool renders native form", value.Bool(true), "text", "true"},
		{"list renders native form", value.List(value.Number(1), value.String("a")), "text", `[1,"a"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := summary.Primary(tc.val, tc.agentType); got != tc.want {
				t.Fatalf("Primary = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPrimaryAudioTranscription(t *testing.T) {
	out := value.Map(
		value.Field("transcription", value.Map(
			value.Field("text", value.String("hello world")),
			value.Field("segments", value.List()),
		)),
	)
	if got := summary.Primary(out, "audio"); got != "hello world" {
		t.Fatalf("Primary = %q, want %q", got, "hello world")
	}
	// Without the shortcut the deep field search still reaches the
	// nested text.
	if got := summary.Primary(out, "text"); got != "hello world" {
		t.Fatalf("Primary = %q, want %q", got, "hello world")
	}
}

func TestPrimaryTranscriptionShortcutOutranksTopLevelFields(t *testing.T) {
	out := value.Map(
		value.Field("transcription", value.Map(
			value.Field("text", value.String("spoken words")),
		)),
		value.Field("description", value.String("a lecture recording")),
	)
	// Audio agents take the transcription text directly; everyone else
	// scans the top-level content fields first.
	if got := summary.Primary(out, "audio"); got != "spoken words" {
		t.Fatalf("Primary = %q, want %q", got, "spoken words")
	}
	if got := summary.Primary(out, "text"); got != "a lecture recording" {
		t.Fatalf("Primary = %q, want %q", got, "a lecture recording")
	}
}

func TestPrimaryAnalysis(t *testing.T) {
	direct := value.Map(value.Field("analysis", value.String("plain analysis")))
	if got := summary.Primary(direct, "image"); got != "plain analysis" {
		t.Fatalf("Primary = %q", got)
	}

	nested := value.Map(value.Field("analysis", value.Map(
		value.Field("confidence", value.Number(0.9)),
		value.Field("description", value.String("a red door")),
		value.Field("summary", value.String("door summary")),
	)))
	// summary outranks description in the analysis field priority.
	if got := summary.Primary(nested, "image"); got != "door summary" {
		t.Fatalf("Primary = %q, want %q", got, "door summary")
	}
}

func TestPrimaryTopLevelFieldPriority(t *testing.T) {
	out := value.Map(
		value.Field("message", value.String("the message")),
		value.Field("content", value.String("the content")),
	)
	if got := summary.Primary(out, "text"); got != "the content" {
		t.Fatalf("Primary = %q, want %q", got, "the content")
	}

	// Empty strings do not satisfy the scan.
	blank := value.Map(
		value.Field("text", value.String("")),
		value.Field("summary", value.String("fallback")),
	)
	if got := summary.Primary(blank, "text"); got != "fallback" {
		t.Fatalf("Primary = %q, want %q", got, "fallback")
	}
}

func TestPrimaryDeepSearchDepthBound(t *testing.T) {
	within := value.Map(value.Field("a", value.Map(value.Field("b", value.Map(
		value.Field("text", value.String("deep but reachable")),
	)))))
	if got := summary.Primary(within, "text"); got != "deep but reachable" {
		t.Fatalf("Primary = %q", got)
	}

	beyond := value.Map(value.Field("a", value.Map(value.Field("b", value.Map(
		value.Field("c", value.Map(value.Field("d", value.Map(
			value.Field("text", value.String("too deep")),
		)))),
	)))))
	if got := summary.Primary(beyond, "text"); got == "too deep" {
		t.Fatal("depth bound not enforced")
	}
}

func TestPrimaryPlaceholderListsKeys(t *testing.T) {
	out := value.Map(
		value.Field("width", value.Number(640)),
		value.Field("height", value.Number(480)),
	)
	if got := summary.Primary(out, "image"); got != "{width, height}" {
		t.Fatalf("Primary = %q, want %q", got, "{width, height}")
	}
}

func TestPrimaryIsIdempotent(t *testing.T) {
	out := value.Map(
		value.Field("transcription", value.Map(value.Field("text", value.String("same")))),
	)
	first := summary.Primary(out, "audio")
	second := summary.Primary(out, "audio")
	if first != second {
		t.Fatalf("repeated calls differ: %q vs %q", first, second)
	}
}
