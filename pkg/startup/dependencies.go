package startup

import (
	"context"

	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"

	"github.com/Ramsey-B/laurel/pkg/database"
	"github.com/Ramsey-B/laurel/pkg/kafka"
)

// DatabaseDependency connects the PostgreSQL pool and runs migrations before
// anything that needs the schema starts.
type DatabaseDependency struct {
	Connect      database.ConnectConfig
	Migration    *database.MigrationConfig
	DatabaseName string
	Logger       ectologger.Logger

	db *sqlx.DB
}

func (d *DatabaseDependency) GetName() string {
	return "database"
}

func (d *DatabaseDependency) DependsOn() []string {
	return nil
}

func (d *DatabaseDependency) Start(ctx context.Context) error {
	db, err := database.Connect(d.Connect, d.Logger)
	if err != nil {
		return err
	}
	d.db = db

	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	return database.NewMigrationService(d.Logger, d.Migration).Migrate(d.DatabaseName, driver)
}

func (d *DatabaseDependency) Stop(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// DB returns the connected pool. Nil until Start has succeeded.
func (d *DatabaseDependency) DB() *sqlx.DB {
	return d.db
}

// ProducerDependency brings up the verification event producer. Disabled
// deployments start with no producer; the event emitter treats that as a
// no-op sink.
type ProducerDependency struct {
	Config  kafka.ProducerConfig
	Enabled bool
	Logger  ectologger.Logger

	producer *kafka.Producer
}

func (d *ProducerDependency) GetName() string {
	return "kafka-producer"
}

func (d *ProducerDependency) DependsOn() []string {
	return nil
}

func (d *ProducerDependency) Start(ctx context.Context) error {
	if !d.Enabled {
		d.Logger.Info("Kafka producer disabled, verification events will not be emitted")
		return nil
	}
	d.producer = kafka.NewProducer(d.Config, d.Logger)
	return nil
}

func (d *ProducerDependency) Stop(ctx context.Context) error {
	if d.producer == nil {
		return nil
	}
	return d.producer.Close()
}

// Producer returns the running producer, or nil when disabled.
func (d *ProducerDependency) Producer() *kafka.Producer {
	return d.producer
}
