package util

func GetAppName() string {
	return "CourseCert"
}
