package textproc

import (
	"reflect"
	"testing"
)

func TestExtractHashtagsKeepsOrderAndDuplicates(t *testing.T) {
	got := ExtractHashtags("Check this out #fun #fun 😊 http://x.co")
	want := []string{"#fun", "#fun"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractHashtagsPreservesCasing(t *testing.T) {
	got := ExtractHashtags("#GoLang beats #golang? #GoLang")
	want := []string{"#GoLang", "#golang", "#GoLang"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractHashtagsNone(t *testing.T) {
	if got := ExtractHashtags("no tags here"); len(got) != 0 {
		t.Fatalf("expected no hashtags, got %v", got)
	}
}

func TestExtractEmoji(t *testing.T) {
	got := ExtractEmoji("Check this out #fun #fun 😊 http://x.co")
	want := []string{"😊"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractEmojiDuplicatesInOrder(t *testing.T) {
	got := ExtractEmoji("🔥 sale 🔥😊")
	want := []string{"🔥", "🔥", "😊"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractEmojiEmpty(t *testing.T) {
	if got := ExtractEmoji("plain text"); len(got) != 0 {
		t.Fatalf("expected no emoji, got %v", got)
	}
}
