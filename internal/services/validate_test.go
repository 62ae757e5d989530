package services

import "testing"

func TestOneOf(t *testing.T) {
	if !OneOf("Pending", ProjectStatuses) {
		t.Fatal("known status rejected")
	}
	if OneOf("pending", ProjectStatuses) {
		t.Fatal("enum match should be case sensitive")
	}
	if OneOf("", ProjectStatuses) {
		t.Fatal("empty value accepted")
	}
	if !OneOf("kg", PurchaseUnits) {
		t.Fatal("known unit rejected")
	}
	if OneOf("tons", PurchaseUnits) {
		t.Fatal("unknown unit accepted")
	}
}

func TestIsNotificationType(t *testing.T) {
	for _, known := range []string{
		NotificationInquiryReceived,
		NotificationProjectCreated,
		NotificationProjectUpdated,
		NotificationProjectDeleted,
	} {
		if !IsNotificationType(known) {
			t.Fatalf("known type %q rejected", known)
		}
	}
	if IsNotificationType("task_created") {
		t.Fatal("unknown type accepted")
	}
}
