package repository

// Classroom API route templates, used as metric labels.
const (
	routeLogin            = "/auth/login"
	routeRegister         = "/auth/register"
	routeLogout           = "/auth/logout"
	routeUser             = "/user"
	routeProfile          = "/user/profile"
	routeEditProfile      = "/user/profile/edit"
	routeUserClasses      = "/user/classes"
	routeCreateClass      = "/class/create"
	routeJoinClass        = "/class/join"
	routeClass            = "/class/{id}"
	routeClassRole        = "/class/{id}/role"
	routeCreateAssignment = "/class/{id}/create-assignment"
	routeAssignment       = "/class/{id}/assignment/{aid}"
	routeSubmit           = "/class/{id}/assignment/{aid}/submit"
	routeDeleteFile       = "/class/{id}/assignment/{aid}/delete-file/{fid}"
	routeCancelSubmission = "/class/{id}/assignment/{aid}/cancel-submission"
	routeAddMaterials     = "/class/{id}/assignment/{aid}/add-materials"
	routeSubmissions      = "/class/{id}/submissions"
	routeSubmission       = "/class/{id}/submissions/{sid}"
	routeGrade            = "/class/{id}/submissions/{sid}/grade"
	routeCancelGrade      = "/class/{id}/submissions/{sid}/cancel-grade"
	routeSubmissionFile   = "/class/{id}/download-submission-file/{fid}"
	routeMaterialFile     = "/class/{id}/download-material-file/{fid}"
)
