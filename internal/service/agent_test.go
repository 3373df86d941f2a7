package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/cache"
	"frontdesk/internal/domain"
)

func newAgentFixture(catalog *fakeCatalog) *AgentServiceImpl {
	availability := NewAvailabilityService(catalog, testLogger())
	booking := NewBookingService(newFakeApptRepo(), catalog, cache.New(0, 0), 3*time.Second, testLogger())
	return NewAgentService(catalog, availability, booking, testLogger())
}

func TestCheckAvailabilitySingleDay(t *testing.T) {
	catalog := &fakeCatalog{business: testBusiness(), hours: allWeekHours("09:00", "17:00")}
	agent := newAgentFixture(catalog)

	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID: testBusinessID,
		Expression: "tomorrow",
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.NotEmpty(t, res.Slots)
	assert.NotEmpty(t, res.Day)
	assert.NotEmpty(t, res.Message)
}

func TestCheckAvailabilityDispatchesRange(t *testing.T) {
	catalog := &fakeCatalog{business: testBusiness(), hours: allWeekHours("09:00", "17:00")}
	agent := newAgentFixture(catalog)

	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID: testBusinessID,
		Expression: "sometime next week",
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.Slots)
	require.NotEmpty(t, res.Days)
	assert.Equal(t, time.Monday.String(), res.Days[0].Day)
}

func TestCheckAvailabilityClosedDayIsSpeakable(t *testing.T) {
	catalog := &fakeCatalog{business: testBusiness(), hours: allWeekClosed()}
	agent := newAgentFixture(catalog)

	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID: testBusinessID,
		Expression: "tomorrow",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Contains(t, res.Message, "closed")
	assert.NotEmpty(t, res.Suggestion)
}

func TestCheckAvailabilityErrorsBecomeResults(t *testing.T) {
	// Hours missing entirely: the agent never sees a raw error, it gets a
	// message plus a next step to speak.
	catalog := &fakeCatalog{business: testBusiness()}
	agent := newAgentFixture(catalog)

	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID: testBusinessID,
		Expression: "tomorrow",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.NotEmpty(t, res.Message)
	assert.NotEmpty(t, res.Suggestion)

	// Unknown business likewise.
	res, err = agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID: "nope",
		Expression: "tomorrow",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.NotEmpty(t, res.Suggestion)
}

func TestCheckAvailabilityResolvesResourceByName(t *testing.T) {
	resID := "res-1"
	var off domain.ResourceHours
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		off = append(off, domain.ResourceDayHours{ResourceID: resID, Weekday: wd, Off: true})
	}
	catalog := &fakeCatalog{
		business:      testBusiness(),
		hours:         allWeekHours("09:00", "17:00"),
		roster:        []domain.Resource{{ID: resID, BusinessID: testBusinessID, Name: "Dr. Amara Osei"}},
		resourceHours: map[string]domain.ResourceHours{resID: off},
	}
	agent := newAgentFixture(catalog)

	// "amara" fuzzy-matches the roster entry, whose override closes every
	// day, proving the resolved id flowed through to the slot computation.
	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID:   testBusinessID,
		Expression:   "tomorrow",
		ResourceName: "amara",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Contains(t, res.Message, "closed")
}

func TestCheckAvailabilityUnknownResourceOffersRoster(t *testing.T) {
	catalog := &fakeCatalog{
		business: testBusiness(),
		hours:    allWeekHours("09:00", "17:00"),
		roster:   []domain.Resource{{ID: "res-1", Name: "Dr. Amara Osei"}, {ID: "res-2", Name: "Sam Blake"}},
	}
	agent := newAgentFixture(catalog)

	res, err := agent.CheckAvailability(context.Background(), domain.AvailabilityQuery{
		BusinessID:   testBusinessID,
		Expression:   "tomorrow",
		ResourceName: "Taylor",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Contains(t, res.Suggestion, "Dr. Amara Osei")
	assert.Contains(t, res.Suggestion, "Sam Blake")
}

func TestBookAppointmentResolvesServiceByName(t *testing.T) {
	catalog := &fakeCatalog{
		business: testBusiness(),
		services: []domain.Service{
			{ID: "svc-1", Name: "Teeth Cleaning", DurationMinutes: 45},
			{ID: "svc-2", Name: "Whitening", DurationMinutes: 90},
		},
	}
	agent := newAgentFixture(catalog)

	req := bookingReq(futureDate(7), "2pm")
	req.ServiceName = "cleaning"
	res, err := agent.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.Committed)
	assert.Equal(t, 45*time.Minute, res.EndAt.Sub(res.StartAt))
}

func TestBookAppointmentUnknownServiceOffersMenu(t *testing.T) {
	catalog := &fakeCatalog{
		business: testBusiness(),
		services: []domain.Service{{ID: "svc-1", Name: "Teeth Cleaning"}},
	}
	agent := newAgentFixture(catalog)

	req := bookingReq(futureDate(7), "2pm")
	req.ServiceName = "haircut"
	res, err := agent.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Contains(t, res.Suggestion, "Teeth Cleaning")
}

func TestBookAppointmentUnknownResource(t *testing.T) {
	catalog := &fakeCatalog{
		business: testBusiness(),
		roster:   []domain.Resource{{ID: "res-1", Name: "Sam Blake"}},
	}
	agent := newAgentFixture(catalog)

	req := bookingReq(futureDate(7), "2pm")
	req.ResourceName = "Morgan"
	res, err := agent.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Contains(t, res.Suggestion, "Sam Blake")
}

func TestBookAppointmentPastDateIsSpeakable(t *testing.T) {
	agent := newAgentFixture(&fakeCatalog{business: testBusiness()})

	req := bookingReq(futureDate(7), "2pm")
	req.Date = "2020-01-01"
	res, err := agent.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Contains(t, res.Message, "passed")
}

func TestMatchesName(t *testing.T) {
	assert.True(t, matchesName("Dr. Amara Osei", "amara"))
	assert.True(t, matchesName("Sam", "sam blake"))
	assert.False(t, matchesName("Sam Blake", "mo"))
	assert.False(t, matchesName("", "sam"))
	assert.False(t, matchesName("Sam", "  "))
}
