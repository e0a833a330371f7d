package model

import "time"

type SupportTicket struct {
	TicketID     string     `bson:"ticket_id" json:"ticket_id"`
	Customer     string     `bson:"customer" json:"customer"`
	CustomerID   string     `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	Issue        string     `bson:"issue" json:"issue"`
	Description  string     `bson:"description" json:"description"`
	Priority     string     `bson:"priority" json:"priority"`
	Status       string     `bson:"status" json:"status"`
	AssignedTo   string     `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	RelatedOrder string     `bson:"related_order,omitempty" json:"related_order,omitempty"`
	ResolvedAt   *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`

	BatchEnvelope `bson:",inline"`
}

func (t *SupportTicket) DocID() string { return t.TicketID }
