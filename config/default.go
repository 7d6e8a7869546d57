package config

// DefaultConfigYAML 内置默认配置，外部 config.yaml 与 BUDGET_* 环境变量可逐项覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "debug"
  base_url: "http://localhost:8080"

database:
  host: "127.0.0.1"
  port: "3306"
  username: "budget"
  password: "budget"
  dbname: "budget"
  charset: "utf8mb4"

jwt:
  secret: "change-me-in-production"
  expire_hours: 24

email:
  enabled: false
  host: "smtp.example.com"
  port: 465
  username: ""
  password: ""
  from: "家庭预算"

projection:
  horizon_days: 30
  timeout_seconds: 5
  scheduler_enabled: true
  interval_hours: 1
  alert_cooldown_hours: 24
`)
