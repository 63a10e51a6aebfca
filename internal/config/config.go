package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
		BaseURL  string `mapstructure:"base_url"`
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		TourID      int64 `mapstructure:"tour_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr        string
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN        string
		Migrations string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Pricing struct {
		RoomRate int64 `mapstructure:"room_rate"`
	} `mapstructure:"pricing"`

	Payments struct {
		Default  string
		Razorpay struct {
			KeyID     string `mapstructure:"key_id"`
			KeySecret string `mapstructure:"key_secret"`
			BaseURL   string `mapstructure:"base_url"`
		} `mapstructure:"razorpay"`
		HDFC struct {
			MerchantID  string `mapstructure:"merchant_id"`
			Secret      string
			CheckoutURL string `mapstructure:"checkout_url"`
			ReturnURL   string `mapstructure:"return_url"`
		} `mapstructure:"hdfc"`
		Sandbox struct {
			Enabled bool
			Secret  string
		} `mapstructure:"sandbox"`
	} `mapstructure:"payments"`

	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`

	Storage struct {
		Endpoint      string
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
		Bucket        string
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"storage"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// APP_POSTGRES_DSN перекрывает postgres.dsn и т.п.
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.migrations", "migrations")
	v.SetDefault("pricing.room_rate", 500)
	v.SetDefault("payments.default", "sandbox")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
