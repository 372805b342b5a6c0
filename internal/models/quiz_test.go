package models

import (
	"encoding/json"
	"testing"
)

func TestQuizAnswers_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want QuizAnswers
	}{
		{
			name: "strings",
			data: `{"babyAge":"5-6months","parentingStyle":"gentle","primaryStruggle":"naps"}`,
			want: QuizAnswers{BabyAge: "5-6months", ParentingStyle: "gentle", PrimaryStruggle: "naps"},
		},
		{
			name: "number and null",
			data: `{"babyAge":6,"parentingStyle":null}`,
			want: QuizAnswers{BabyAge: "6"},
		},
		{
			name: "bool array and object",
			data: `{"nightSleep":false,"napPattern":[1, 2],"sleepEnvironment":{"dark":true}}`,
			want: QuizAnswers{NightSleep: "false", NapPattern: "[1, 2]", SleepEnvironment: `{"dark":true}`},
		},
		{
			name: "keys are case sensitive",
			data: `{"BabyAge":"5-6months"}`,
			want: QuizAnswers{},
		},
		{
			name: "not an object",
			data: `"done"`,
			want: QuizAnswers{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got QuizAnswers
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
