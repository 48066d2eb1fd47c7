package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "awass_member_registrations_total",
		Help: "Member registrations accepted.",
	})

	renewalDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awass_renewal_decisions_total",
		Help: "Renewal requests processed, by decision.",
	}, []string{"decision"})

	transactionsResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awass_transactions_resolved_total",
		Help: "Payment transactions resolved by an admin, by result.",
	}, []string{"result"})

	membersSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "awass_members_swept_total",
		Help: "Members flipped to expired by the sweep.",
	})
)
