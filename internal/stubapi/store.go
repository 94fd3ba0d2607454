// Package stubapi is an in-memory Classroom API for local development and end-to-end
// tests. It honours the same routes, payloads and status codes as the real service.
package stubapi

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/storage"
)

type user struct {
	id           int64
	name         string
	email        string
	avatarURL    string
	passwordHash []byte
}

type member struct {
	userID int64
	role   string
}

type class struct {
	id          int64
	title       string
	description string
	teacherID   int64
	joinCode    string
	members     []member
	assignments []int64
}

type assignment struct {
	id          int64
	classID     int64
	title       string
	description string
	dueDate     string
	points      int64
	materials   []int64
}

type submission struct {
	id           int64
	assignmentID int64
	studentID    int64
	submittedAt  *time.Time
	grade        *float64
	gradedAt     *time.Time
	graderID     *int64
	files        []int64
}

type storedFile struct {
	id          int64
	classID     int64
	ownerID     int64
	fileType    string
	name        string
	contentType string
	blob        string
	size        int64
}

// Upload is a file received by the stub.
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Store holds every record. Mutations are serialised; the last write wins.
type Store struct {
	mu sync.RWMutex

	allowCancelGraded bool
	blobs             *storage.LocalStorage
	now               func() time.Time

	nextID      int64
	users       map[int64]*user
	emails      map[string]int64
	classes     map[int64]*class
	joinCodes   map[string]int64
	assignments map[int64]*assignment
	submissions map[int64]*submission
	files       map[int64]*storedFile
}

// NewStore builds an empty store saving uploaded blobs into blobs.
func NewStore(blobs *storage.LocalStorage, allowCancelGraded bool) *Store {
	return &Store{
		allowCancelGraded: allowCancelGraded,
		blobs:             blobs,
		now:               time.Now,
		users:             map[int64]*user{},
		emails:            map[string]int64{},
		classes:           map[int64]*class{},
		joinCodes:         map[string]int64{},
		assignments:       map[int64]*assignment{},
		submissions:       map[int64]*submission{},
		files:             map[int64]*storedFile{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func rejected(template *appErrors.Error, message string) error {
	return appErrors.Clone(template, message)
}

// Register creates an account.
func (s *Store) Register(name, email, password string) (*models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, rejected(appErrors.ErrBadRequest, "Name, email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "Could not store the password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emails[email]; exists {
		return nil, rejected(appErrors.ErrConflict, "Email is already registered")
	}
	u := &user{id: s.id(), name: name, email: email, passwordHash: hash}
	s.users[u.id] = u
	s.emails[email] = u.id
	return &models.AuthResponse{UserID: u.id, Email: u.email}, nil
}

// Authenticate checks email and password.
func (s *Store) Authenticate(email, password string) (*models.AuthResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, rejected(appErrors.ErrUnauthorized, "Invalid email or password")
	}
	u := s.users[id]
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, rejected(appErrors.ErrUnauthorized, "Invalid email or password")
	}
	return &models.AuthResponse{UserID: u.id, Email: u.email}, nil
}

// Profile returns the user's profile.
func (s *Store) Profile(userID int64) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, rejected(appErrors.ErrNotFound, "User not found")
	}
	return &models.UserProfile{ID: u.id, Name: u.name, Email: u.email}, nil
}

// EditProfile renames the user.
func (s *Store) EditProfile(userID int64, req models.EditProfileRequest) (*models.UserProfile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, rejected(appErrors.ErrBadRequest, "Name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, rejected(appErrors.ErrNotFound, "User not found")
	}
	u.name = name
	u.avatarURL = strings.TrimSpace(req.AvatarURL)
	return &models.UserProfile{ID: u.id, Name: u.name, Email: u.email}, nil
}

// CreateClass makes userID the teacher of a new class.
func (s *Store) CreateClass(userID int64, req models.CreateClassRequest) (*models.CreatedClass, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, rejected(appErrors.ErrBadRequest, "Title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return nil, rejected(appErrors.ErrNotFound, "User not found")
	}
	code := s.newJoinCode()
	cl := &class{
		id:          s.id(),
		title:       title,
		description: strings.TrimSpace(req.Description),
		teacherID:   userID,
		joinCode:    code,
		members:     []member{{userID: userID, role: models.ClassRoleTeacher}},
	}
	s.classes[cl.id] = cl
	s.joinCodes[code] = cl.id
	return &models.CreatedClass{ID: cl.id, JoinCode: code}, nil
}

func (s *Store) newJoinCode() string {
	for {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if _, taken := s.joinCodes[code]; !taken {
			return code
		}
	}
}

// JoinClass enrols userID as a student.
func (s *Store) JoinClass(userID int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	classID, ok := s.joinCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return rejected(appErrors.ErrNotFound, "No class with this join code")
	}
	cl := s.classes[classID]
	if roleOf(cl, userID) != "" {
		return rejected(appErrors.ErrConflict, "You are already a member of this class")
	}
	cl.members = append(cl.members, member{userID: userID, role: models.ClassRoleStudent})
	return nil
}

func roleOf(cl *class, userID int64) string {
	for _, m := range cl.members {
		if m.userID == userID {
			return m.role
		}
	}
	return ""
}

// memberClass returns the class when userID belongs to it. Callers hold the lock.
func (s *Store) memberClass(userID, classID int64) (*class, string, error) {
	cl, ok := s.classes[classID]
	if !ok {
		return nil, "", rejected(appErrors.ErrNotFound, "Class not found")
	}
	role := roleOf(cl, userID)
	if role == "" {
		return nil, "", rejected(appErrors.ErrForbidden, "You are not a member of this class")
	}
	return cl, role, nil
}

func (s *Store) teacherClass(userID, classID int64) (*class, error) {
	cl, role, err := s.memberClass(userID, classID)
	if err != nil {
		return nil, err
	}
	if role != models.ClassRoleTeacher {
		return nil, rejected(appErrors.ErrForbidden, "Only the teacher of this class can do this")
	}
	return cl, nil
}

// Role reports whether userID teaches the class.
func (s *Store) Role(userID, classID int64) (*models.ClassRoleResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, role, err := s.memberClass(userID, classID)
	if err != nil {
		return nil, err
	}
	return &models.ClassRoleResponse{IsTeacher: role == models.ClassRoleTeacher}, nil
}

// Class returns the class record. The join code is shown to the teacher only.
func (s *Store) Class(userID, classID int64) (*models.ClassData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cl, role, err := s.memberClass(userID, classID)
	if err != nil {
		return nil, err
	}

	data := &models.ClassData{
		ID:          cl.id,
		Title:       cl.title,
		Description: cl.description,
		Teacher:     s.users[cl.teacherID].name,
		Assignments: make([]models.AssignmentInfo, 0, len(cl.assignments)),
		Users:       make([]models.ClassUser, 0, len(cl.members)),
	}
	if role == models.ClassRoleTeacher {
		data.JoinCode = cl.joinCode
	}
	for _, id := range cl.assignments {
		a := s.assignments[id]
		data.Assignments = append(data.Assignments, models.AssignmentInfo{ID: a.id, Title: a.title, DueDate: a.dueDate})
	}
	for _, m := range cl.members {
		data.Users = append(data.Users, models.ClassUser{Name: s.users[m.userID].name, Role: m.role})
	}
	return data, nil
}

// Classes lists userID's classes grouped by role.
func (s *Store) Classes(userID int64) *models.ClassList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.classes))
	for id := range s.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := &models.ClassList{EnrolledClasses: []models.ClassSummary{}, TeachingClasses: []models.ClassSummary{}}
	now := s.now()
	for _, id := range ids {
		cl := s.classes[id]
		summary := models.ClassSummary{
			ID:                 cl.id,
			Title:              cl.title,
			Teacher:            s.users[cl.teacherID].name,
			UpcomingAssignment: s.upcoming(cl, now),
		}
		switch roleOf(cl, userID) {
		case models.ClassRoleTeacher:
			list.TeachingClasses = append(list.TeachingClasses, summary)
		case models.ClassRoleStudent:
			list.EnrolledClasses = append(list.EnrolledClasses, summary)
		}
	}
	return list
}

// upcoming names the assignment due next after now.
func (s *Store) upcoming(cl *class, now time.Time) *string {
	var (
		title string
		next  time.Time
	)
	for _, id := range cl.assignments {
		a := s.assignments[id]
		due, err := time.ParseInLocation(models.DueDateLayout, a.dueDate, time.UTC)
		if err != nil || due.Before(now) {
			continue
		}
		if next.IsZero() || due.Before(next) {
			title, next = a.title, due
		}
	}
	if title == "" {
		return nil
	}
	return &title
}

// CreateAssignment adds an assignment to the class.
func (s *Store) CreateAssignment(userID, classID int64, req models.CreateAssignmentRequest) (*models.CreatedAssignment, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, rejected(appErrors.ErrBadRequest, "Title is required")
	}
	if req.Points < 0 {
		return nil, rejected(appErrors.ErrBadRequest, "Points must not be negative")
	}
	if _, err := time.Parse(models.DueDateLayout, req.DueDate); err != nil {
		return nil, rejected(appErrors.ErrBadRequest, "Invalid due date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cl, err := s.teacherClass(userID, classID)
	if err != nil {
		return nil, err
	}
	a := &assignment{
		id:          s.id(),
		classID:     cl.id,
		title:       title,
		description: strings.TrimSpace(req.Description),
		dueDate:     req.DueDate,
		points:      req.Points,
	}
	s.assignments[a.id] = a
	cl.assignments = append(cl.assignments, a.id)
	return &models.CreatedAssignment{ID: a.id}, nil
}

// classAssignment returns the assignment when it belongs to the class. Callers hold the lock.
func (s *Store) classAssignment(classID, assignmentID int64) (*assignment, error) {
	a, ok := s.assignments[assignmentID]
	if !ok || a.classID != classID {
		return nil, rejected(appErrors.ErrNotFound, "Assignment not found")
	}
	return a, nil
}

// Assignment returns the assignment personalised for userID.
func (s *Store) Assignment(userID, classID, assignmentID int64) (*models.AssignmentData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cl, _, err := s.memberClass(userID, classID)
	if err != nil {
		return nil, err
	}
	a, err := s.classAssignment(classID, assignmentID)
	if err != nil {
		return nil, err
	}

	data := &models.AssignmentData{
		ID:              a.id,
		ClassID:         cl.id,
		Title:           a.title,
		ClassTitle:      cl.title,
		Description:     a.description,
		DueDate:         a.dueDate,
		Points:          a.points,
		Materials:       s.describe(a.materials),
		SubmissionFiles: []models.AssignmentFile{},
	}
	if sub := s.submissionOf(a.id, userID); sub != nil {
		data.SubmissionFiles = s.describe(sub.files)
		data.IsSubmitted = sub.submittedAt != nil
		data.Grade = sub.grade
	}
	return data, nil
}

func (s *Store) describe(ids []int64) []models.AssignmentFile {
	files := make([]models.AssignmentFile, 0, len(ids))
	for _, id := range ids {
		f := s.files[id]
		fileID := f.id
		files = append(files, models.AssignmentFile{ID: &fileID, FileName: f.name, ContentType: f.contentType, FileType: f.fileType})
	}
	return files
}

func (s *Store) submissionOf(assignmentID, studentID int64) *submission {
	for _, sub := range s.submissions {
		if sub.assignmentID == assignmentID && sub.studentID == studentID {
			return sub
		}
	}
	return nil
}

// saveUploads stores every upload as a file of the given type. Callers hold the lock.
func (s *Store) saveUploads(classID, ownerID int64, fileType string, uploads []Upload) ([]int64, error) {
	ids := make([]int64, 0, len(uploads))
	for _, up := range uploads {
		blob := uuid.NewString()
		size, err := s.blobs.Save(blob, up.Content)
		if err != nil {
			s.dropFiles(ids)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal, "Could not store the file")
		}
		f := &storedFile{
			id:          s.id(),
			classID:     classID,
			ownerID:     ownerID,
			fileType:    fileType,
			name:        up.Name,
			contentType: up.ContentType,
			blob:        blob,
			size:        size,
		}
		s.files[f.id] = f
		ids = append(ids, f.id)
	}
	return ids, nil
}

func (s *Store) dropFiles(ids []int64) {
	for _, id := range ids {
		if f, ok := s.files[id]; ok {
			_ = s.blobs.Delete(f.blob)
			delete(s.files, id)
		}
	}
}

// Submit attaches uploads to userID's submission and marks it submitted. Uploads accumulate.
func (s *Store) Submit(userID, classID, assignmentID int64, uploads []Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, role, err := s.memberClass(userID, classID)
	if err != nil {
		return err
	}
	if role != models.ClassRoleStudent {
		return rejected(appErrors.ErrForbidden, "Only students can submit")
	}
	a, err := s.classAssignment(classID, assignmentID)
	if err != nil {
		return err
	}

	sub := s.submissionOf(a.id, userID)
	if sub == nil {
		sub = &submission{id: s.id(), assignmentID: a.id, studentID: userID}
		s.submissions[sub.id] = sub
	}
	if sub.grade != nil {
		return rejected(appErrors.ErrConflict, "Submission is already graded")
	}
	ids, err := s.saveUploads(classID, sub.id, models.FileTypeSubmission, uploads)
	if err != nil {
		return err
	}
	sub.files = append(sub.files, ids...)
	now := s.now().UTC()
	sub.submittedAt = &now
	return nil
}

// DeleteFile removes one file from userID's submission. An ungraded submission left with
// no files goes back to unsubmitted.
func (s *Store) DeleteFile(userID, classID, assignmentID, fileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.memberClass(userID, classID); err != nil {
		return err
	}
	a, err := s.classAssignment(classID, assignmentID)
	if err != nil {
		return err
	}
	sub := s.submissionOf(a.id, userID)
	if sub == nil {
		return rejected(appErrors.ErrNotFound, "File not found")
	}
	idx := indexOf(sub.files, fileID)
	if idx < 0 {
		return rejected(appErrors.ErrNotFound, "File not found")
	}
	if sub.grade != nil {
		return rejected(appErrors.ErrConflict, "Submission is already graded")
	}

	s.dropFiles([]int64{fileID})
	sub.files = append(sub.files[:idx], sub.files[idx+1:]...)
	if len(sub.files) == 0 {
		sub.submittedAt = nil
	}
	return nil
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// CancelSubmission withdraws userID's submission and discards its files.
func (s *Store) CancelSubmission(userID, classID, assignmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.memberClass(userID, classID); err != nil {
		return err
	}
	a, err := s.classAssignment(classID, assignmentID)
	if err != nil {
		return err
	}
	sub := s.submissionOf(a.id, userID)
	if sub == nil || sub.submittedAt == nil {
		return rejected(appErrors.ErrNotFound, "Nothing has been submitted")
	}
	if sub.grade != nil && !s.allowCancelGraded {
		return rejected(appErrors.ErrConflict, "Submission is already graded")
	}

	s.dropFiles(sub.files)
	delete(s.submissions, sub.id)
	return nil
}

// AddMaterials attaches reference files to the assignment.
func (s *Store) AddMaterials(userID, classID, assignmentID int64, uploads []Upload) error {
	if len(uploads) == 0 {
		return rejected(appErrors.ErrBadRequest, "No files were uploaded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.teacherClass(userID, classID); err != nil {
		return err
	}
	a, err := s.classAssignment(classID, assignmentID)
	if err != nil {
		return err
	}
	ids, err := s.saveUploads(classID, a.id, models.FileTypeMaterial, uploads)
	if err != nil {
		return err
	}
	a.materials = append(a.materials, ids...)
	return nil
}

// Submissions lists the class's submitted work, most recently submitted first.
func (s *Store) Submissions(userID, classID int64) ([]models.SubmissionListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.teacherClass(userID, classID); err != nil {
		return nil, err
	}

	subs := make([]*submission, 0)
	for _, sub := range s.submissions {
		if sub.submittedAt != nil && s.assignments[sub.assignmentID].classID == classID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].submittedAt.Equal(*subs[j].submittedAt) {
			return subs[i].submittedAt.After(*subs[j].submittedAt)
		}
		return subs[i].id > subs[j].id
	})

	items := make([]models.SubmissionListItem, 0, len(subs))
	for _, sub := range subs {
		items = append(items, s.listItem(sub))
	}
	return items, nil
}

func (s *Store) listItem(sub *submission) models.SubmissionListItem {
	a := s.assignments[sub.assignmentID]
	return models.SubmissionListItem{
		ID:              sub.id,
		AssignmentID:    a.id,
		AssignmentTitle: a.title,
		StudentName:     s.users[sub.studentID].name,
		SubmittedAt:     formatTime(sub.submittedAt),
		IsGraded:        sub.grade != nil,
		Grade:           sub.grade,
	}
}

// classSubmission returns a submission of the class. Callers hold the lock.
func (s *Store) classSubmission(classID, submissionID int64) (*submission, error) {
	sub, ok := s.submissions[submissionID]
	if !ok || s.assignments[sub.assignmentID].classID != classID {
		return nil, rejected(appErrors.ErrNotFound, "Submission not found")
	}
	return sub, nil
}

// Submission returns the teacher's view of one submission.
func (s *Store) Submission(userID, classID, submissionID int64) (*models.SubmissionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.teacherClass(userID, classID); err != nil {
		return nil, err
	}
	sub, err := s.classSubmission(classID, submissionID)
	if err != nil {
		return nil, err
	}

	item := s.listItem(sub)
	detail := &models.SubmissionDetail{
		ID:               item.ID,
		AssignmentID:     item.AssignmentID,
		AssignmentTitle:  item.AssignmentTitle,
		AssignmentPoints: s.assignments[sub.assignmentID].points,
		StudentName:      item.StudentName,
		SubmittedAt:      item.SubmittedAt,
		IsGraded:         item.IsGraded,
		Grade:            item.Grade,
		GradedAt:         formatTime(sub.gradedAt),
		Files:            s.describe(sub.files),
	}
	if sub.graderID != nil {
		name := s.users[*sub.graderID].name
		detail.GraderName = &name
	}
	return detail, nil
}

// Grade sets the grade of a submitted submission. The grade must lie within [0, points].
func (s *Store) Grade(userID, classID, submissionID int64, grade float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.teacherClass(userID, classID); err != nil {
		return err
	}
	sub, err := s.classSubmission(classID, submissionID)
	if err != nil {
		return err
	}
	if sub.submittedAt == nil {
		return rejected(appErrors.ErrNotFound, "Submission not found")
	}
	points := s.assignments[sub.assignmentID].points
	if grade < 0 || grade > float64(points) {
		return rejected(appErrors.ErrUnprocessable, "Grade must be between 0 and "+strconv.FormatInt(points, 10))
	}

	now := s.now().UTC()
	grader := userID
	sub.grade = &grade
	sub.gradedAt = &now
	sub.graderID = &grader
	return nil
}

// CancelGrade clears grade, grading time and grader; submission time and files stay.
func (s *Store) CancelGrade(userID, classID, submissionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.teacherClass(userID, classID); err != nil {
		return err
	}
	sub, err := s.classSubmission(classID, submissionID)
	if err != nil {
		return err
	}
	if sub.grade == nil {
		return rejected(appErrors.ErrConflict, "Submission is not graded")
	}
	sub.grade = nil
	sub.gradedAt = nil
	sub.graderID = nil
	return nil
}

// File locates a stored file the caller may read. Submission files are readable by the
// class teacher and the submitting student, materials by every member.
func (s *Store) File(userID, classID, fileID int64, fileType string) (*storedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, role, err := s.memberClass(userID, classID)
	if err != nil {
		return nil, err
	}
	f, ok := s.files[fileID]
	if !ok || f.classID != classID || f.fileType != fileType {
		return nil, rejected(appErrors.ErrNotFound, "File not found")
	}
	if fileType == models.FileTypeSubmission && role != models.ClassRoleTeacher {
		if sub, ok := s.submissions[f.ownerID]; !ok || sub.studentID != userID {
			return nil, rejected(appErrors.ErrForbidden, "You cannot read this file")
		}
	}
	copied := *f
	return &copied, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
