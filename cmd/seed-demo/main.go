package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/database"
	"github.com/smartattend/backend/internal/logger"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Demo avatar palette, cycled across students.
var colors = []string{
	"#3b82f6", "#6366f1", "#10b981", "#f59e0b",
	"#ef4444", "#8b5cf6", "#06b6d4", "#ec4899",
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Idempotent: refuse to reseed a populated database.
	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&existing); err != nil {
		log.Fatal().Err(err).Msg("Failed to inspect users table")
	}
	if existing > 0 {
		fmt.Println("Already seeded.")
		return
	}

	userRepo := repository.NewUserRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	fmt.Println("=== Seeding Demo Data ===")

	// ─── Admin ─────────────────────────────────────────────────────────
	createUser(ctx, log, userRepo, &model.User{
		Name: "Admin Office", Email: "admin@college.edu",
		PasswordHash: hashPassword(log, cfg.BcryptCost, "admin123"),
		Role:         model.RoleAdmin,
		Department:   "Administration", AvatarColor: "#6366f1",
	})

	// ─── Faculty ───────────────────────────────────────────────────────
	facultyData := []struct{ name, email, dept, color string }{
		{"Dr. Sarah Khan", "s.khan@college.edu", "Mathematics", "#3b82f6"},
		{"Prof. Raj Patel", "r.patel@college.edu", "Computer Science", "#10b981"},
		{"Dr. Amina Noor", "a.noor@college.edu", "Physics", "#f59e0b"},
		{"Mr. Arjun Mehta", "a.mehta@college.edu", "English", "#8b5cf6"},
	}
	facultyHash := hashPassword(log, cfg.BcryptCost, "faculty123")
	faculty := make([]*model.User, 0, len(facultyData))
	for _, f := range facultyData {
		u := &model.User{
			Name: f.name, Email: f.email, PasswordHash: facultyHash,
			Role: model.RoleFaculty, Department: f.dept, AvatarColor: f.color,
		}
		createUser(ctx, log, userRepo, u)
		faculty = append(faculty, u)
	}

	// ─── Students ──────────────────────────────────────────────────────
	studentData := []struct{ name, email, no string }{
		{"Ali Hassan", "ali@student.edu", "2024-CS-001"},
		{"Priya Sharma", "priya@student.edu", "2024-CS-002"},
		{"Omar Farooq", "omar@student.edu", "2024-CS-003"},
		{"Zara Ahmed", "zara@student.edu", "2024-CS-004"},
		{"Rohan Verma", "rohan@student.edu", "2024-CS-005"},
		{"Fatima Malik", "fatima@student.edu", "2024-CS-006"},
		{"Dev Patel", "dev@student.edu", "2024-CS-007"},
		{"Sara Qureshi", "sara@student.edu", "2024-CS-008"},
	}
	studentHash := hashPassword(log, cfg.BcryptCost, "student123")
	students := make([]*model.User, 0, len(studentData))
	for i, s := range studentData {
		u := &model.User{
			Name: s.name, Email: s.email, PasswordHash: studentHash,
			Role: model.RoleStudent, StudentNo: s.no,
			AvatarColor: colors[i%len(colors)],
		}
		createUser(ctx, log, userRepo, u)
		students = append(students, u)
	}

	// ─── Subjects ──────────────────────────────────────────────────────
	subjectData := []struct {
		name, code   string
		facultyIdx   int
		section, sem string
	}{
		{"Calculus II", "MATH201", 0, "A", "2nd"},
		{"Linear Algebra", "MATH202", 0, "A", "2nd"},
		{"Data Structures", "CS201", 1, "A", "2nd"},
		{"Database Systems", "CS202", 1, "B", "2nd"},
		{"Mechanics", "PHY201", 2, "A", "2nd"},
		{"Technical Writing", "ENG201", 3, "A", "2nd"},
	}
	subjects := make([]*model.Subject, 0, len(subjectData))
	for _, sd := range subjectData {
		subj := &model.Subject{
			Name: sd.name, Code: sd.code,
			FacultyID: faculty[sd.facultyIdx].ID,
			Section:   sd.section, Semester: sd.sem,
		}
		if err := subjectRepo.Create(ctx, subj); err != nil {
			log.Fatal().Err(err).Str("code", sd.code).Msg("Failed to create subject")
		}
		subjects = append(subjects, subj)
	}

	// ─── Class Slots ───────────────────────────────────────────────────
	slotData := []struct {
		subjectIdx            int
		day, start, end, room string
	}{
		{0, "Monday", "08:00", "09:00", "Room 101"},
		{0, "Wednesday", "08:00", "09:00", "Room 101"},
		{0, "Friday", "08:00", "09:00", "Room 101"},
		{1, "Tuesday", "10:00", "11:00", "Room 102"},
		{1, "Thursday", "10:00", "11:00", "Room 102"},
		{2, "Monday", "11:00", "12:00", "Lab A"},
		{2, "Wednesday", "11:00", "12:00", "Lab A"},
		{2, "Friday", "11:00", "12:00", "Lab A"},
		{3, "Tuesday", "13:00", "14:00", "Lab B"},
		{3, "Thursday", "13:00", "14:00", "Lab B"},
		{4, "Monday", "14:00", "15:00", "Room 201"},
		{4, "Wednesday", "14:00", "15:00", "Room 201"},
		{5, "Tuesday", "15:00", "16:00", "Room 301"},
		{5, "Friday", "15:00", "16:00", "Room 301"},
	}
	type seededSlot struct {
		slot    *model.ClassSlot
		subject *model.Subject
	}
	slots := make([]seededSlot, 0, len(slotData))
	for _, sl := range slotData {
		subject := subjects[sl.subjectIdx]
		slot := &model.ClassSlot{
			SubjectID: subject.ID,
			DayOfWeek: sl.day, StartTime: sl.start, EndTime: sl.end, Room: sl.room,
		}
		if err := slotRepo.Create(ctx, slot); err != nil {
			log.Fatal().Err(err).Msg("Failed to create slot")
		}
		slots = append(slots, seededSlot{slot: slot, subject: subject})
	}

	// ─── Enrollments (all students in all subjects) ───────────────────
	for _, st := range students {
		for _, subj := range subjects {
			if err := enrollmentRepo.Create(ctx, st.ID, subj.ID); err != nil {
				log.Fatal().Err(err).Msg("Failed to enroll student")
			}
		}
	}

	// ─── Demo Attendance (past 10 days, weekdays only) ────────────────
	rng := rand.New(rand.NewSource(42))
	today := time.Now()
	for _, ss := range slots {
		for i := 1; i <= 10; i++ {
			day := today.AddDate(0, 0, -i)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			if day.Weekday().String() != ss.slot.DayOfWeek {
				continue
			}

			records := make([]model.RecordInput, 0, len(students))
			present, absent := 0, 0
			for idx, st := range students {
				// Rohan and Fatima trend toward low attendance so the risk
				// views have something to show.
				threshold := 0.18
				if idx == 4 {
					threshold = 0.65
				} else if idx == 5 {
					threshold = 0.55
				}
				status := model.StatusPresent
				if rng.Float64() <= threshold {
					status = model.StatusAbsent
					absent++
				} else {
					present++
				}
				records = append(records, model.RecordInput{StudentID: st.ID, Status: status})
			}

			sess := &model.AttendanceSession{
				SubjectID:    ss.subject.ID,
				SlotID:       ss.slot.ID,
				FacultyID:    ss.subject.FacultyID,
				Date:         day.Format("2006-01-02"),
				TotalPresent: present,
				TotalAbsent:  absent,
			}
			if err := attendanceRepo.SubmitSession(ctx, sess, records, nil); err != nil {
				log.Fatal().Err(err).Msg("Failed to seed attendance session")
			}
		}
	}

	// ─── Welcome Notifications ─────────────────────────────────────────
	for _, st := range students {
		userID := st.ID
		n := &model.Notification{
			UserID:  &userID,
			Title:   "Welcome to Smart Attendance!",
			Message: "Your attendance portal is now active. Check your attendance % under 'My Attendance'.",
			Type:    model.NotificationSuccess,
		}
		if err := notificationRepo.Insert(ctx, n); err != nil {
			log.Fatal().Err(err).Msg("Failed to create welcome notification")
		}
	}
	roleFaculty := model.RoleFaculty
	broadcast := &model.Notification{
		RoleTarget: &roleFaculty,
		Title:      "Attendance System Live",
		Message:    "You can now take attendance from your schedule. Go to 'My Schedule' and click any class.",
		Type:       model.NotificationInfo,
	}
	if err := notificationRepo.Insert(ctx, broadcast); err != nil {
		log.Fatal().Err(err).Msg("Failed to create broadcast notification")
	}

	fmt.Println("Seeded successfully!")
	fmt.Println()
	fmt.Println("  Demo Logins:")
	fmt.Println("  Admin:   admin@college.edu    / admin123")
	fmt.Println("  Faculty: s.khan@college.edu   / faculty123")
	fmt.Println("  Student: ali@student.edu      / student123")
}

func hashPassword(log zerolog.Logger, cost int, pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	return string(h)
}

func createUser(ctx context.Context, log zerolog.Logger, repo *repository.UserRepository, u *model.User) {
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Str("email", u.Email).Msg("Failed to create user")
	}
}
