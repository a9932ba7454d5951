package db

import "gorm.io/gorm"

type Repositories struct {
	Patients     *PatientRepository
	Periods      *PeriodRepository
	Services     *ServiceRepository
	Appointments *AppointmentRepository
	Orders       *OrderRepository
	KV           *KVRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Patients:     NewPatientRepository(database),
		Periods:      NewPeriodRepository(database),
		Services:     NewServiceRepository(database),
		Appointments: NewAppointmentRepository(database),
		Orders:       NewOrderRepository(database),
		KV:           NewKVRepository(database),
	}
}
