package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}

// PaymentCfg 支付网关相关配置
type PaymentCfg struct {
	PublicBaseUrl     string `mapstructure:"publicBaseUrl"`     // 回调公网地址前缀
	DefaultGatewayUrl string `mapstructure:"defaultGatewayUrl"` // 渠道未配置网关时的兜底地址
	ConnectTimeoutSec int    `mapstructure:"connectTimeoutSec"`
	ReadTimeoutSec    int    `mapstructure:"readTimeoutSec"`
}

// LockCfg 分布式锁/乐观锁配置
type LockCfg struct {
	TTLSec     int `mapstructure:"ttlSec"`
	MaxRetries int `mapstructure:"maxRetries"`
}

type Root struct {
	Server     ServerCfg  `mapstructure:"server"`
	MysqlMain  MysqlCfg   `mapstructure:"mysql_main"`
	MysqlOrder MysqlCfg   `mapstructure:"mysql_order"`
	Redis      RedisCfg   `mapstructure:"redis"`
	RabbitMQ   RabbitCfg  `mapstructure:"rabbitmq"`
	Payment    PaymentCfg `mapstructure:"payment"`
	Lock       LockCfg    `mapstructure:"lock"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Payment.ConnectTimeoutSec <= 0 {
		C.Payment.ConnectTimeoutSec = 3
	}
	if C.Payment.ReadTimeoutSec <= 0 {
		C.Payment.ReadTimeoutSec = 5
	}
	if C.Lock.TTLSec <= 0 {
		C.Lock.TTLSec = 30
	}
	if C.Lock.MaxRetries <= 0 {
		C.Lock.MaxRetries = 3
	}
}
