package conf

// Environment enum
type Environment int

const (
	LocalEnvironmentEnum Environment = iota
	MainnetEnvironmentEnum
	TestnetEnvironmentEnum
	ExampleEnvironmentEnum
)

// SystemEnvironmentEnum current runtime environment, set from the -env flag
var SystemEnvironmentEnum = MainnetEnvironmentEnum

// GetYaml return config file path for current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./conf/conf_local.yaml"
	case TestnetEnvironmentEnum:
		return "./conf/conf_testnet.yaml"
	case ExampleEnvironmentEnum:
		return "./conf/conf_example.yaml"
	default:
		return "./conf/conf_mainnet.yaml"
	}
}
