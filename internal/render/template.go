package render

import "html/template"

var pageTemplate = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Hero}}{{.Hero.Name}}{{else}}Portfolio{{end}}</title>
</head>
<body>
{{if .Hero}}<header>
{{if .Hero.ProfileImageURL}}<img src="{{.Hero.ProfileImageURL}}" alt="{{.Hero.Name}}" class="profile">{{end}}
<h1>{{.Hero.Name}}</h1>
<h2>{{.Hero.JobTitle}}</h2>
<p>{{.Hero.Subtitle}}</p>
</header>{{end}}
{{if .AboutParagraphs}}<section id="about">
{{range .AboutParagraphs}}<p>{{range .}}{{if .URL}}<a href="{{.URL}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}{{end}}</p>
{{end}}</section>{{end}}
{{if .Experience}}<section id="experience">
<h2>Experience</h2>
{{range .Experience}}<article>
{{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.Company}}">{{end}}
<h3>{{.Position}} at {{.Company}}</h3>
<p>{{.Duration}}</p>
<p>{{.Description}}</p>
{{if .Technologies}}<ul>{{range .Technologies}}<li>{{.}}</li>{{end}}</ul>{{end}}
</article>
{{end}}</section>{{end}}
{{if .Projects}}<section id="projects">
<h2>Projects</h2>
{{range .Projects}}<article>
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
<h3>{{if .ProjectLink}}<a href="{{.ProjectLink}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</h3>
<p>{{.Description}}</p>
{{if .Technologies}}<ul>{{range .Technologies}}<li>{{.}}</li>{{end}}</ul>{{end}}
</article>
{{end}}</section>{{end}}
{{if .Writing}}<section id="writing">
<h2>Writing</h2>
{{range .Writing}}<article>
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
<h3>{{if .WritingLink}}<a href="{{.WritingLink}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
<p>{{.Year}}</p>
</article>
{{end}}</section>{{end}}
{{if .Contact}}<section id="contact">
<h2>{{.Contact.Title}}</h2>
<p><a href="mailto:{{.Contact.Email}}">{{.Contact.Email}}</a></p>
{{if .Contact.Phone}}<p>{{.Contact.Phone}}</p>{{end}}
<ul>
{{if .Contact.Social.LinkedIn}}<li><a href="{{.Contact.Social.LinkedIn}}">LinkedIn</a></li>{{end}}
{{if .Contact.Social.GitHub}}<li><a href="{{.Contact.Social.GitHub}}">GitHub</a></li>{{end}}
{{if .Contact.Social.Twitter}}<li><a href="{{.Contact.Social.Twitter}}">Twitter</a></li>{{end}}
{{if .Contact.Social.StackOverflow}}<li><a href="{{.Contact.Social.StackOverflow}}">Stack Overflow</a></li>{{end}}
{{if .Contact.Social.Facebook}}<li><a href="{{.Contact.Social.Facebook}}">Facebook</a></li>{{end}}
{{if .Contact.Social.Instagram}}<li><a href="{{.Contact.Social.Instagram}}">Instagram</a></li>{{end}}
{{if .Contact.Social.YouTube}}<li><a href="{{.Contact.Social.YouTube}}">YouTube</a></li>{{end}}
{{if .Contact.Social.TikTok}}<li><a href="{{.Contact.Social.TikTok}}">TikTok</a></li>{{end}}
{{if .Contact.Social.Twitch}}<li><a href="{{.Contact.Social.Twitch}}">Twitch</a></li>{{end}}
{{if .Contact.Social.Medium}}<li><a href="{{.Contact.Social.Medium}}">Medium</a></li>{{end}}
</ul>
</section>{{end}}
{{if .ResumeURL}}<footer><a href="{{.ResumeURL}}">Resume</a></footer>{{end}}
</body>
</html>
`))
