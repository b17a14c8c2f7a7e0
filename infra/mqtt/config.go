package mqtt

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker          string `json:"broker"`
	ClientID        string `json:"client_id"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	RequestTopic    string `json:"request_topic"`
	AllocationTopic string `json:"allocation_topic"`
	QoS             byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "matchengine"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "matching/requests"
	}
	if c.AllocationTopic == "" {
		c.AllocationTopic = "matching/allocations"
	}
}
