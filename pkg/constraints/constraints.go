package constraints

type Action int32

const (
	DELETE Action = 0
	PUT    Action = 1
)

// Feature lifecycle status derived from the active/enabled pair.
const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
	StatusInactive = "INACTIVE"
)

// Threshold range check outcome.
const (
	CheckValid      = "VALID"
	CheckOutOfRange = "OUT_OF_RANGE"
)

// Retraining interval kinds.
const (
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

// Mirror entry kinds as published to etcd.
const (
	KindFeature       = "features"
	KindThreshold     = "thresholds"
	KindCustomerRules = "customer-rules"
)

// Per-customer rule parameters known to the decision engines.
const (
	ParamVelocity10Min    = "velocity_check_10min"
	ParamVelocity1Hour    = "velocity_check_1hour"
	ParamMonthlySpending  = "monthly_spending_check"
	ParamNewBeneficiary   = "new_beneficiary_check"
	ParamIsolationForest  = "isolation_forest_check"
	ParamAutoencoderCheck = "autoencoder_check"
)

// RuleParameters lists every customer rule parameter in display order.
var RuleParameters = []string{
	ParamVelocity10Min,
	ParamVelocity1Hour,
	ParamMonthlySpending,
	ParamNewBeneficiary,
	ParamIsolationForest,
	ParamAutoencoderCheck,
}
