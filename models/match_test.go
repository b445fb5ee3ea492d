package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderPair(t *testing.T) {
	x := primitive.NewObjectID()
	y := primitive.NewObjectID()

	a1, b1 := OrderPair(x, y)
	a2, b2 := OrderPair(y, x)
	if a1 != a2 || b1 != b2 {
		t.Fatal("ordering must not depend on argument order")
	}
	if a1.Hex() > b1.Hex() {
		t.Fatalf("pair not canonical: %s > %s", a1.Hex(), b1.Hex())
	}
}

func TestMatchSlotOf(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	m := &Match{UserAID: a, UserBID: b}

	if slot, ok := m.SlotOf(a); !ok || slot != SlotA {
		t.Fatalf("SlotOf(a) = %v, %v", slot, ok)
	}
	if slot, ok := m.SlotOf(b); !ok || slot != SlotB {
		t.Fatalf("SlotOf(b) = %v, %v", slot, ok)
	}
	if _, ok := m.SlotOf(primitive.NewObjectID()); ok {
		t.Fatal("stranger must not resolve to a slot")
	}
}

func TestMatchOtherUserID(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	m := &Match{UserAID: a, UserBID: b}

	if other, ok := m.OtherUserID(a); !ok || other != b {
		t.Fatalf("OtherUserID(a) = %s, %v", other.Hex(), ok)
	}
	if other, ok := m.OtherUserID(b); !ok || other != a {
		t.Fatalf("OtherUserID(b) = %s, %v", other.Hex(), ok)
	}
	if _, ok := m.OtherUserID(primitive.NewObjectID()); ok {
		t.Fatal("stranger has no counterpart")
	}
}

func TestMatchCanMessage(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	proposed := &Match{UserAID: a, UserBID: b, AgentAApproves: true}
	if proposed.CanMessage(a) || proposed.CanMessage(b) {
		t.Fatal("unconfirmed match must not allow messaging")
	}

	confirmed := &Match{UserAID: a, UserBID: b, AgentAApproves: true, AgentBApproves: true, Confirmed: true}
	if !confirmed.CanMessage(a) || !confirmed.CanMessage(b) {
		t.Fatal("participants of a confirmed match may message")
	}
	if confirmed.CanMessage(stranger) {
		t.Fatal("stranger must not message")
	}
}

func TestAgentProfileHasSignal(t *testing.T) {
	empty := AgentProfile{UserID: primitive.NewObjectID()}
	if empty.HasSignal() {
		t.Fatal("blank profile has no signal")
	}

	fields := []AgentProfile{
		{PersonalitySummary: "x"},
		{Interests: "x"},
		{CoreValues: "x"},
		{CommunicationStyle: "x"},
		{LookingFor: "x"},
		{DealBreakers: "x"},
		{RawNotes: "x"},
	}
	for i, p := range fields {
		if !p.HasSignal() {
			t.Fatalf("field %d alone should count as signal", i)
		}
	}
}
