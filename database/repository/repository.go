package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	chatRepo "sahayata/database/repository/chat"
	groupRepo "sahayata/database/repository/group"
	notificationRepo "sahayata/database/repository/notification"
	profileRepo "sahayata/database/repository/profile"
	recordsRepo "sahayata/database/repository/records"
	scheduledRepo "sahayata/database/repository/scheduled"
	userRepo "sahayata/database/repository/user"
	"sahayata/models"
)

type (
	UserRepository          = userRepo.UserRepository
	ProfileRepository       = profileRepo.ProfileRepository
	NotificationRepository  = notificationRepo.NotificationRepository
	MedicalRecordRepository = recordsRepo.MedicalRecordRepository
	GroupRepository         = groupRepo.GroupRepository
	ChatRepository          = chatRepo.ChatRepository
	AppointmentRepository   = scheduledRepo.ScheduledRepository[models.Appointment]
	RoutineRepository       = scheduledRepo.ScheduledRepository[models.RoutineTask]
)

// Repositories holds every Mongo-backed repository.
type Repositories struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Notifications NotificationRepository
	Records       MedicalRecordRepository
	Groups        GroupRepository
	Chats         ChatRepository
	Appointments  AppointmentRepository
	Routines      RoutineRepository
}

// Open builds all repositories on db, creating their indexes.
func Open(db *mongo.Database) (*Repositories, error) {
	var (
		repos Repositories
		err   error
	)
	if repos.Users, err = userRepo.NewMongoUserRepo(db); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	if repos.Profiles, err = profileRepo.NewMongoProfileRepo(db); err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	if repos.Notifications, err = notificationRepo.NewMongoNotificationRepo(db); err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	if repos.Records, err = recordsRepo.NewMongoRecordRepo(db); err != nil {
		return nil, fmt.Errorf("medical records: %w", err)
	}
	if repos.Groups, err = groupRepo.NewMongoGroupRepo(db); err != nil {
		return nil, fmt.Errorf("groups: %w", err)
	}
	if repos.Chats, err = chatRepo.NewMongoChatRepo(db); err != nil {
		return nil, fmt.Errorf("chats: %w", err)
	}
	if repos.Appointments, err = scheduledRepo.NewAppointmentRepo(db); err != nil {
		return nil, fmt.Errorf("appointments: %w", err)
	}
	if repos.Routines, err = scheduledRepo.NewRoutineRepo(db); err != nil {
		return nil, fmt.Errorf("routines: %w", err)
	}
	return &repos, nil
}
