package partner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	b, err := NewBranch("lhr-01", "Lahore Main")
	require.NoError(t, err)
	assert.Equal(t, "LHR-01", b.Code, "codes are upper-cased")
	assert.Equal(t, "Lahore Main", b.Name)
	assert.True(t, b.IsActive)

	_, err = NewBranch("", "Lahore Main")
	assert.Error(t, err)
	_, err = NewBranch("lhr 01", "Lahore Main")
	assert.Error(t, err, "codes cannot contain spaces")
	_, err = NewBranch("LHR-01", "")
	assert.Error(t, err)
}

func TestBranch_Deactivate(t *testing.T) {
	b, _ := NewBranch("KHI-01", "Karachi Main")
	b.Deactivate()
	assert.False(t, b.IsActive)
	b.Activate()
	assert.True(t, b.IsActive)
}

func TestNewAgent(t *testing.T) {
	branchID := uuid.New()
	a, err := NewAgent("ag-100", "Asim Khan", branchID)
	require.NoError(t, err)
	assert.Equal(t, "AG-100", a.Code)
	assert.Equal(t, branchID, a.BranchID)

	_, err = NewAgent("AG-100", "Asim Khan", uuid.Nil)
	assert.Error(t, err)
}

func TestAgent_Transfer(t *testing.T) {
	a, _ := NewAgent("AG-100", "Asim Khan", uuid.New())
	next := uuid.New()
	require.NoError(t, a.Transfer(next))
	assert.Equal(t, next, a.BranchID)
	assert.Error(t, a.Transfer(uuid.Nil))
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("Sara Ahmed", "35202-1234567-1")
	require.NoError(t, err)
	assert.Equal(t, "35202-1234567-1", c.DocumentNo)
	assert.True(t, c.IsActive)

	_, err = NewClient("Sara Ahmed", "")
	assert.Error(t, err)
}

func TestClient_SetDateOfBirth(t *testing.T) {
	c, _ := NewClient("Sara Ahmed", "35202-1234567-1")

	dob := time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.SetDateOfBirth(dob))
	require.NotNil(t, c.DateOfBirth)
	assert.True(t, c.DateOfBirth.Equal(dob))

	assert.Error(t, c.SetDateOfBirth(time.Now().Add(24*time.Hour)))
}

func TestClient_SetContact(t *testing.T) {
	c, _ := NewClient("Sara Ahmed", "35202-1234567-1")
	require.NoError(t, c.SetContact("0300-1234567", "Sara@Example.com"))
	assert.Equal(t, "sara@example.com", c.Email)
}

func TestNewCity(t *testing.T) {
	city, err := NewCity("Lahore", "Punjab")
	require.NoError(t, err)
	assert.True(t, city.IsActive)

	_, err = NewCity("", "Punjab")
	assert.Error(t, err)
}

func TestCourier_TrackingLink(t *testing.T) {
	c, err := NewCourier("TCS Express", "tcs")
	require.NoError(t, err)
	assert.Equal(t, "TCS", c.ServiceCode)

	assert.Equal(t, "", c.TrackingLink("CN123"), "no template configured")

	require.NoError(t, c.SetTrackingURL("https://track.example.com/{tracking}"))
	assert.Equal(t, "https://track.example.com/CN123", c.TrackingLink("CN123"))
	assert.Equal(t, "", c.TrackingLink(""))
}
