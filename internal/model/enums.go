package model

// Enum values mirror the ledger schema and must not be reordered.
// Display labels are declared statically instead of being derived from the
// enum at runtime, so the wire value and the label can never drift apart.

// Role identifies what a registered user is allowed to do in the chain.
type Role uint8

const (
	RoleManufacturer Role = 0
	RoleDistributor  Role = 1
	RoleRetailer     Role = 2
	RoleAdmin        Role = 3
)

// UserStatus tracks the admin-managed lifecycle of a registered user.
type UserStatus uint8

const (
	StatusPending     UserStatus = 0
	StatusActive      UserStatus = 1
	StatusDeactivated UserStatus = 2
	StatusRejected    UserStatus = 3
	StatusBlocked     UserStatus = 4
)

// Stage is the position of a product in the supply chain.
type Stage uint8

const (
	StageManufactured Stage = 0
	StageDistributor  Stage = 1
	StageRetailer     Stage = 2
	StageSold         Stage = 3
	StageLost         Stage = 4
)

// Option pairs a wire value with its display label.
type Option struct {
	Value uint8  `json:"value"`
	Label string `json:"label"`
}

var RoleOptions = []Option{
	{Value: uint8(RoleManufacturer), Label: "Manufacturer"},
	{Value: uint8(RoleDistributor), Label: "Distributor"},
	{Value: uint8(RoleRetailer), Label: "Retailer"},
	{Value: uint8(RoleAdmin), Label: "Admin"},
}

var UserStatusOptions = []Option{
	{Value: uint8(StatusPending), Label: "Pending"},
	{Value: uint8(StatusActive), Label: "Active"},
	{Value: uint8(StatusDeactivated), Label: "Deactivated"},
	{Value: uint8(StatusRejected), Label: "Rejected"},
	{Value: uint8(StatusBlocked), Label: "Blocked"},
}

var StageOptions = []Option{
	{Value: uint8(StageManufactured), Label: "Manufactured"},
	{Value: uint8(StageDistributor), Label: "Distributor"},
	{Value: uint8(StageRetailer), Label: "Retailer"},
	{Value: uint8(StageSold), Label: "Sold"},
	{Value: uint8(StageLost), Label: "Lost"},
}

func label(options []Option, v uint8) string {
	for _, o := range options {
		if o.Value == v {
			return o.Label
		}
	}
	return "Unknown"
}

func (r Role) String() string        { return label(RoleOptions, uint8(r)) }
func (s UserStatus) String() string  { return label(UserStatusOptions, uint8(s)) }
func (s Stage) String() string       { return label(StageOptions, uint8(s)) }

// Valid reports whether the value is a declared member of the enum.
func (r Role) Valid() bool       { return r <= RoleAdmin }
func (s UserStatus) Valid() bool { return s <= StatusBlocked }
func (s Stage) Valid() bool      { return s <= StageLost }

// Terminal reports whether no further status change is allowed.
// Blocked and Rejected users stay that way permanently.
func (s UserStatus) Terminal() bool {
	return s == StatusBlocked || s == StatusRejected
}

// Terminal reports whether a product can never leave this stage.
func (s Stage) Terminal() bool {
	return s == StageSold || s == StageLost
}

// RoleByLabel resolves a display label back to its Role value.
func RoleByLabel(name string) (Role, bool) {
	for _, o := range RoleOptions {
		if o.Label == name {
			return Role(o.Value), true
		}
	}
	return 0, false
}
